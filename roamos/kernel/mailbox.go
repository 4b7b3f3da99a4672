package kernel

// mailbox is a fixed ring of messages. head and tail wrap freely; their
// difference is the fill level.
type mailbox struct {
	head  uint8
	tail  uint8
	slots [mailboxSlots]Message
}

func (mb *mailbox) empty() bool { return mb.head == mb.tail }

func (mb *mailbox) len() int { return int(mb.head - mb.tail) }

func (mb *mailbox) push(msg Message) bool {
	if mb.len() >= mailboxSlots {
		return false
	}
	mb.slots[mb.head%mailboxSlots] = msg
	mb.head++
	return true
}

func (mb *mailbox) pop() (Message, bool) {
	if mb.empty() {
		return Message{}, false
	}
	msg := mb.slots[mb.tail%mailboxSlots]
	mb.slots[mb.tail%mailboxSlots] = Message{}
	mb.tail++
	return msg, true
}

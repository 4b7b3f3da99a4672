package kernel

type parkMode uint8

const (
	parkNone parkMode = iota
	parkTick
	parkEndpoint
)

// Context provides task-local access to kernel operations for the duration of
// one Task.Step call.
type Context struct {
	k      *Kernel
	taskID TaskID

	park   parkMode
	parkOn Endpoint
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// NowTick returns the kernel tick counter.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.tick
}

// Recv pops one message from the capability endpoint. When the mailbox is
// empty the task is parked on the endpoint and woken by the next send.
func (c *Context) Recv(epCap Capability) (Message, bool) {
	msg, ok := c.TryRecv(epCap)
	if !ok && epCap.canRecv() {
		c.BlockOn(epCap)
	}
	return msg, ok
}

// TryRecv pops one message from the capability endpoint without parking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	if c.k == nil || !epCap.canRecv() {
		return Message{}, false
	}
	return c.k.recv(epCap.ep)
}

// BlockOn parks the task until a message arrives on the endpoint. The task
// stays runnable if the mailbox is already non-empty when Step returns.
func (c *Context) BlockOn(epCap Capability) {
	if c.k == nil || !epCap.canRecv() || epCap.ep >= c.k.endpointCount {
		return
	}
	c.park = parkEndpoint
	c.parkOn = epCap.ep
}

// BlockOnTick parks the task until the next Kernel.Tick call.
func (c *Context) BlockOnTick() {
	c.park = parkTick
}

// SendCapResult sends a message from fromCap's endpoint and transfers an
// optional capability.
func (c *Context) SendCapResult(fromCap, toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	if !fromCap.Valid() {
		return SendErrInvalidFromCap
	}
	if !fromCap.canSend() {
		return SendErrFromNoSendRight
	}
	return c.sendFrom(fromCap.ep, toCap, kind, payload, xfer)
}

// SendToCapResult sends a message and transfers an optional capability.
//
// The message From field is set to 0 (unknown).
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	return c.sendFrom(0, toCap, kind, payload, xfer)
}

// SendTo sends a message to the capability endpoint.
func (c *Context) SendTo(toCap Capability, kind uint16, payload []byte) bool {
	return c.SendToCapResult(toCap, kind, payload, Capability{}) == SendOK
}

func (c *Context) sendFrom(from Endpoint, toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	if !toCap.Valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	if c.k == nil {
		return SendErrNoEndpoint
	}
	return c.k.send(from, toCap.ep, kind, payload, xfer)
}

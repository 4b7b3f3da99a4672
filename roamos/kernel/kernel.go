package kernel

const (
	maxTasks     = 16
	maxEndpoints = 16
	mailboxSlots = 16
)

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Capability grants access to an IPC endpoint. The zero value grants nothing.
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) Valid() bool { return c.rights != 0 }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// MaxMessageBytes is the maximum payload size for IPC messages.
const MaxMessageBytes = 128

// Message is a fixed-size IPC envelope.
type Message struct {
	From Endpoint
	To   Endpoint
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
	Cap  Capability
}

// Payload returns the valid part of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidFromCap
	SendErrInvalidToCap
	SendErrFromNoSendRight
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidFromCap:
		return "invalid from capability"
	case SendErrInvalidToCap:
		return "invalid to capability"
	case SendErrFromNoSendRight:
		return "from capability has no send right"
	case SendErrToNoSendRight:
		return "to capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	default:
		return "unknown"
	}
}

// Task is a cooperative unit of execution. Step must return promptly; a task
// that has nothing to do parks itself with Context.BlockOn or
// Context.BlockOnTick.
type Task interface {
	Step(*Context)
}

type endpointState struct {
	q       mailbox
	waiters uint32
}

type taskState struct {
	task     Task
	runnable bool
	dead     bool
}

// Kernel is a single-threaded cooperative scheduler plus IPC router. It is not
// safe for concurrent use; the host loop owns it.
type Kernel struct {
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	tasks     [maxTasks]taskState
	taskCount TaskID

	rr TaskID

	tick        uint64
	tickWaiters uint32
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// NewEndpoint allocates a new endpoint and returns a capability for it. It
// returns the zero Capability once the endpoint table is full.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	if k.endpointCount >= maxEndpoints || rights == 0 {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	return Capability{ep: ep, rights: rights}
}

// AddTask registers a task and returns its ID. ok is false once the task
// table is full.
func (k *Kernel) AddTask(t Task) (id TaskID, ok bool) {
	if t == nil || k.taskCount >= maxTasks {
		return 0, false
	}
	id = k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{task: t, runnable: true}
	return id, true
}

// NowTick returns the number of Tick calls so far.
func (k *Kernel) NowTick() uint64 { return k.tick }

// Step runs at most one runnable task step, round-robin. It reports whether a
// task ran; false means every task is parked.
//
// A task that panics is recovered, reported through the panic handler and
// never scheduled again.
func (k *Kernel) Step() bool {
	for i := TaskID(0); i < k.taskCount; i++ {
		id := (k.rr + i) % k.taskCount
		st := &k.tasks[id]
		if st.dead || !st.runnable {
			continue
		}

		k.rr = (id + 1) % k.taskCount
		ctx := &Context{k: k, taskID: id}
		if !k.runTask(st, ctx) {
			st.dead = true
			st.runnable = false
			return true
		}

		switch ctx.park {
		case parkTick:
			st.runnable = false
			k.tickWaiters |= 1 << id
		case parkEndpoint:
			ep := &k.endpoints[ctx.parkOn]
			if !ep.q.empty() {
				break
			}
			st.runnable = false
			ep.waiters |= 1 << id
		}
		return true
	}
	return false
}

// RunUntilIdle steps tasks until all are parked or budget steps have run.
// It returns the number of steps taken.
func (k *Kernel) RunUntilIdle(budget int) int {
	n := 0
	for n < budget && k.Step() {
		n++
	}
	return n
}

func (k *Kernel) runTask(st *taskState, ctx *Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			triggerPanic(PanicInfo{TaskID: ctx.taskID, Value: r})
			ok = false
		}
	}()
	st.task.Step(ctx)
	return true
}

// Tick advances the tick counter and wakes tasks parked with BlockOnTick.
func (k *Kernel) Tick() {
	k.tick++
	k.tickWaiters = k.wake(k.tickWaiters)
}

func (k *Kernel) wake(mask uint32) uint32 {
	if mask == 0 {
		return 0
	}
	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if mask&(1<<tid) != 0 && !k.tasks[tid].dead {
			k.tasks[tid].runnable = true
		}
	}
	return 0
}

func (k *Kernel) send(from, to Endpoint, kind uint16, payload []byte, xfer Capability) SendResult {
	if to >= k.endpointCount {
		return SendErrNoEndpoint
	}
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	msg := Message{From: from, To: to, Kind: kind, Len: uint16(len(payload)), Cap: xfer}
	copy(msg.Data[:], payload)

	ep := &k.endpoints[to]
	if !ep.q.push(msg) {
		return SendErrQueueFull
	}
	ep.waiters = k.wake(ep.waiters)
	return SendOK
}

func (k *Kernel) recv(from Endpoint) (Message, bool) {
	if from >= k.endpointCount {
		return Message{}, false
	}
	return k.endpoints[from].q.pop()
}

package emu

// SyscallHandler executes a host-provided system call on behalf of a
// running Machine. call is the syscall number carried by the syscall
// instruction's immediate. Implementations read arguments from and
// write results back into m's registers, by convention through ROU.
// The bool result reports whether call was recognized; an unrecognized
// call becomes UnknownSystemCall.
type SyscallHandler interface {
	Execute(call uint64, m *Machine) (handled bool, err error)
}

// ExecuteSyscall dispatches call to handler. A nil handler or an
// unrecognized call both fail with UnknownSystemCall.
func (m *Machine) ExecuteSyscall(call uint64, handler SyscallHandler) error {
	if handler == nil {
		return errUnknownSystemCall(call)
	}
	handled, err := handler.Execute(call, m)
	if err != nil {
		return err
	}
	if !handled {
		return errUnknownSystemCall(call)
	}
	return nil
}

package rtc

// fakeConn emulates the DS3231 register file over a register-addressed Tx.
type fakeConn struct {
	regs      [19]byte
	writes    [][]byte
	readErr   error
	writeErr  error
	failAfter int // writes accepted before writeErr is returned
}

func (f *fakeConn) Tx(w, r []byte) error {
	if len(r) > 0 {
		if f.readErr != nil {
			return f.readErr
		}
		start := int(w[0])
		copy(r, f.regs[start:])
		return nil
	}
	if f.writeErr != nil && len(f.writes) >= f.failAfter {
		return f.writeErr
	}
	f.writes = append(f.writes, append([]byte(nil), w...))
	reg := int(w[0])
	copy(f.regs[reg:], w[1:])
	return nil
}

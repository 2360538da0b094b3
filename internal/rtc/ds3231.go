package rtc

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/frost-relay/internal/clock"
	"github.com/thatsimonsguy/frost-relay/internal/model"
)

const (
	Address  uint16 = 0x68
	StartReg byte   = 0x00
)

// Conn is a register-level transport. *i2c.Dev from periph satisfies it.
type Conn interface {
	Tx(w, r []byte) error
}

// IOError reports a failed bus transfer. It matches model.ErrHardwareIO.
type IOError struct {
	Op  string
	Reg byte
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("ds3231 %s register 0x%02x: %v", e.Op, e.Reg, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == model.ErrHardwareIO }

type DS3231 struct {
	conn Conn
}

func New(conn Conn) *DS3231 {
	return &DS3231{conn: conn}
}

// ReadBlock reads the seven timekeeping registers in one transfer.
func (d *DS3231) ReadBlock() (Block, error) {
	var b Block
	if err := d.conn.Tx([]byte{StartReg}, b[:]); err != nil {
		return Block{}, &IOError{Op: "read", Reg: StartReg, Err: err}
	}
	return b, nil
}

func (d *DS3231) ReadTime() (model.CalendarTime, error) {
	b, err := d.ReadBlock()
	if err != nil {
		return model.CalendarTime{}, err
	}
	return Decode(b), nil
}

// SaveTime writes each register in its own transfer. A concurrent reader can
// observe a partially written block; the chip offers no multi-register transaction.
func (d *DS3231) SaveTime(t model.CalendarTime) error {
	b, err := Encode(t)
	if err != nil {
		return err
	}
	for i, v := range b {
		reg := StartReg + byte(i)
		if err := d.conn.Tx([]byte{reg, v}, nil); err != nil {
			return &IOError{Op: "write", Reg: reg, Err: err}
		}
	}
	log.Info().Stringer("time", t).Msg("Saved time to RTC")
	return nil
}

// Sync reads the RTC and pushes its value into the host clock.
func (d *DS3231) Sync(clk clock.Setter) (model.CalendarTime, error) {
	t, err := d.ReadTime()
	if err != nil {
		return model.CalendarTime{}, err
	}
	if err := clk.Set(t.Time()); err != nil {
		return t, fmt.Errorf("set system clock from rtc: %w", err)
	}
	log.Debug().Stringer("rtc_time", t).Msg("System clock synced from RTC")
	return t, nil
}

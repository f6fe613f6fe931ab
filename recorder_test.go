package pcd8544

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

var errInjected = errors.New("injected failure")

// op is one observed bus write, pin write or delay.
type op struct {
	dev   string
	level gpio.Level
	data  []byte
	delay time.Duration
}

func (o op) String() string {
	switch o.dev {
	case "bus":
		if len(o.data) > 8 {
			return fmt.Sprintf("bus[%d bytes]", len(o.data))
		}
		return fmt.Sprintf("bus% x", o.data)
	case "sleep":
		return fmt.Sprintf("sleep(%s)", o.delay)
	default:
		return fmt.Sprintf("%s=%s", o.dev, o.level)
	}
}

func (o op) kind() ErrorKind {
	switch o.dev {
	case "bus":
		return BusError
	case "dc":
		return DCPinError
	case "rst":
		return ResetPinError
	}
	return 0
}

// recorder logs writes from a fake bus and fake pins in program order, and
// fails the failAt-th write (1-based) when failAt is set.
type recorder struct {
	ops    []op
	writes int
	failAt int
	closed bool
	dc     gpio.Level
}

func (r *recorder) write(o op) error {
	r.writes++
	if r.writes == r.failAt {
		return errInjected
	}
	r.ops = append(r.ops, o)
	return nil
}

func (r *recorder) sleep(d time.Duration) {
	r.ops = append(r.ops, op{dev: "sleep", delay: d})
}

// commands returns all bytes written while DC was low.
func (r *recorder) commands() []byte {
	var out []byte
	for _, o := range r.ops {
		if o.dev == "bus" && o.level == gpio.Low {
			out = append(out, o.data...)
		}
	}
	return out
}

// frames returns every bus write made while DC was high.
func (r *recorder) frames() [][]byte {
	var out [][]byte
	for _, o := range r.ops {
		if o.dev == "bus" && o.level == gpio.High {
			out = append(out, o.data)
		}
	}
	return out
}

// writeOps returns the ops that are bus or pin writes.
func (r *recorder) writeOps() []op {
	var out []op
	for _, o := range r.ops {
		if o.dev != "sleep" {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.ops = nil
}

type fakeBus struct {
	r *recorder
}

func (b fakeBus) Tx(w, _ []byte) error {
	// Bus ops carry the DC level they were written under.
	return b.r.write(op{dev: "bus", level: b.r.dc, data: bytes.Clone(w)})
}

func (b fakeBus) Close() error {
	b.r.closed = true
	return nil
}

type fakePin struct {
	r    *recorder
	name string
}

func (p fakePin) Out(l gpio.Level) error {
	if err := p.r.write(op{dev: p.name, level: l}); err != nil {
		return err
	}
	if p.name == "dc" {
		p.r.dc = l
	}
	return nil
}

func newTestConn(failAt int) (Conn, *recorder) {
	r := &recorder{failAt: failAt}
	return NewConn(fakeBus{r}, fakePin{r, "dc"}, fakePin{r, "rst"}), r
}

func newTestController(failAt int) (*Controller, *recorder) {
	c, r := newTestConn(failAt)
	return NewController(c), r
}

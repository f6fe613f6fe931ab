package pcd8544

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
)

func TestControllerAddressingHorizontal(t *testing.T) {
	c, r := newTestController(0)
	for _, horizontal := range []bool{true, false, true} {
		if err := c.AddressingHorizontal(horizontal); err != nil {
			t.Fatal(err)
		}
		if v := c.Horizontal(); v != horizontal {
			t.Errorf("expected Horizontal() %t, got %t", horizontal, v)
		}
	}
	if v, want := r.commands(), []byte{0x20, 0x22, 0x20}; !bytes.Equal(v, want) {
		t.Errorf("expected commands % x, got % x", want, v)
	}
}

func TestControllerContrast(t *testing.T) {
	tests := []struct {
		name       string
		horizontal bool
		contrast   byte
		want       []byte
	}{
		{"horizontal", true, 0x3f, []byte{0x21, 0x06, 0x14, 0xbf, 0x20}},
		{"vertical", false, 0x3f, []byte{0x23, 0x06, 0x14, 0xbf, 0x22}},
		{"masked", true, 0xc0, []byte{0x21, 0x06, 0x14, 0xc0, 0x20}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, r := newTestController(0)
			if err := c.AddressingHorizontal(test.horizontal); err != nil {
				t.Fatal(err)
			}
			r.reset()

			if err := c.contrast(test.contrast, 0x14, 0x06); err != nil {
				t.Fatal(err)
			}
			if v := r.commands(); !bytes.Equal(v, test.want) {
				t.Errorf("expected commands % x, got % x", test.want, v)
			}
			if v := c.Horizontal(); v != test.horizontal {
				t.Error("contrast changed the addressing mode")
			}
			if c.fn&extendedInstr != 0 {
				t.Error("extended instruction set left active")
			}
		})
	}
}

func TestControllerPosition(t *testing.T) {
	tests := []struct {
		x, y uint8
		want []byte
	}{
		{0, 0, []byte{0x80, 0x40}},
		{83, 5, []byte{0xd3, 0x45}},
		{0x90, 9, []byte{0x90, 0x41}}, // truncated, not rejected
	}
	for _, test := range tests {
		c, r := newTestController(0)
		if err := c.Position(test.x, test.y); err != nil {
			t.Fatal(err)
		}
		if v := r.commands(); !bytes.Equal(v, test.want) {
			t.Errorf("Position(%d,%d): expected % x, got % x", test.x, test.y, test.want, v)
		}
	}
}

func TestControllerClear(t *testing.T) {
	c, r := newTestController(0)
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}

	ops := r.writeOps()
	if len(ops) != 5 {
		t.Fatalf("expected 5 writes, got %v", ops)
	}
	if ops[0].dev != "dc" || ops[0].level != gpio.High {
		t.Errorf("expected DC high first, got %s", ops[0])
	}
	if !bytes.Equal(ops[1].data, make([]byte, BufSize)) {
		t.Errorf("expected one frame of %d zero bytes, got %s", BufSize, ops[1])
	}
	if ops[2].dev != "dc" || ops[2].level != gpio.Low {
		t.Errorf("expected DC low after data, got %s", ops[2])
	}
	if v, want := r.commands(), []byte{0x80, 0x40}; !bytes.Equal(v, want) {
		t.Errorf("expected cursor reset % x, got % x", want, v)
	}
}

func TestControllerData(t *testing.T) {
	c, r := newTestController(0)

	if err := c.Data(nil); err != nil {
		t.Fatal(err)
	}
	if len(r.ops) != 0 {
		t.Fatalf("empty data caused writes: %v", r.ops)
	}

	// Overlong runs are passed through, the chip wraps around.
	long := bytes.Repeat([]byte{0xaa}, BufSize+10)
	n, err := c.Write(long)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(long) {
		t.Errorf("expected %d bytes written, got %d", len(long), n)
	}
	frames := r.frames()
	if len(frames) != 1 || !bytes.Equal(frames[0], long) {
		t.Errorf("expected a single %d byte frame, got %d frames", len(long), len(frames))
	}
}

func TestControllerInit(t *testing.T) {
	c, r := newTestController(0)
	if err := c.Init(); err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x20,                         // function set, horizontal
		0x21, 0x06, 0x14, 0xbf, 0x20, // contrast
		0x0c,       // normal display
		0x80, 0x40, // cursor home
	}
	if v := r.commands(); !bytes.Equal(v, want) {
		t.Errorf("expected commands % x, got % x", want, v)
	}
	frames := r.frames()
	if len(frames) != 1 || !bytes.Equal(frames[0], make([]byte, BufSize)) {
		t.Errorf("expected display RAM to be cleared once, got %d frames", len(frames))
	}
	if !c.Horizontal() || c.fn != setFunction {
		t.Errorf("expected function register %#02x, got %#02x", setFunction, c.fn)
	}
}

func TestControllerInitRestoresFunction(t *testing.T) {
	c, r := newTestController(0)
	if err := c.PowerDown(true); err != nil {
		t.Fatal(err)
	}
	if err := c.AddressingHorizontal(false); err != nil {
		t.Fatal(err)
	}
	r.reset()

	if err := c.Init(); err != nil {
		t.Fatal(err)
	}
	if v := r.commands(); v[0] != 0x20 {
		t.Errorf("expected init to power up with horizontal addressing, got %#02x", v[0])
	}
}

func TestControllerInitFailure(t *testing.T) {
	// Record a clean run to learn which capability each write goes to.
	ref, clean := newTestController(0)
	if err := ref.Init(); err != nil {
		t.Fatal(err)
	}
	writes := clean.writeOps()

	for n := 1; n <= len(writes); n++ {
		c, r := newTestController(n)
		err := c.Init()
		if err == nil {
			t.Fatalf("write %d: expected error", n)
		}
		if !errors.Is(err, errInjected) {
			t.Errorf("write %d: expected injected error, got %v", n, err)
		}
		if v, want := KindOf(err), writes[n-1].kind(); v != want {
			t.Errorf("write %d (%s): expected %s error, got %s", n, writes[n-1], want, v)
		}
		if v := len(r.writeOps()); v != n-1 {
			t.Errorf("write %d: expected %d writes before stopping, got %d", n, n-1, v)
		}
	}
}

func TestControllerReset(t *testing.T) {
	c, r := newTestController(0)
	if err := c.Reset(r.sleep); err != nil {
		t.Fatal(err)
	}
	want := []op{
		{dev: "rst", level: gpio.High},
		{dev: "sleep", delay: 100 * time.Microsecond},
		{dev: "rst", level: gpio.Low},
		{dev: "sleep", delay: 100 * time.Microsecond},
		{dev: "rst", level: gpio.High},
		{dev: "sleep", delay: 100 * time.Microsecond},
	}
	if len(r.ops) != len(want) {
		t.Fatalf("expected %v, got %v", want, r.ops)
	}
	for i, o := range want {
		if v := r.ops[i]; v.dev != o.dev || v.level != o.level || v.delay != o.delay {
			t.Errorf("op %d: expected %s, got %s", i, o, v)
		}
	}
}

func TestControllerResetFailure(t *testing.T) {
	c, r := newTestController(2)
	err := c.Reset(r.sleep)
	if v := KindOf(err); v != ResetPinError {
		t.Fatalf("expected reset pin error, got %v", err)
	}
	if len(r.ops) != 2 {
		t.Errorf("expected the sequence to stop after the failing edge, got %v", r.ops)
	}
}

func TestControllerPowerDown(t *testing.T) {
	c, r := newTestController(0)
	if err := c.PowerDown(true); err != nil {
		t.Fatal(err)
	}
	if err := c.AddressingHorizontal(false); err != nil {
		t.Fatal(err)
	}
	if err := c.PowerDown(false); err != nil {
		t.Fatal(err)
	}
	if v, want := r.commands(), []byte{0x24, 0x26, 0x22}; !bytes.Equal(v, want) {
		t.Errorf("expected commands % x, got % x", want, v)
	}
}

func TestControllerFunctionUnchangedOnFailure(t *testing.T) {
	// Write 1 is the DC pin, write 2 the function set byte.
	c, _ := newTestController(2)
	if err := c.AddressingHorizontal(false); KindOf(err) != BusError {
		t.Fatalf("expected bus error, got %v", err)
	}
	if !c.Horizontal() {
		t.Error("failed write changed the function register mirror")
	}
}

func TestControllerDisplayMode(t *testing.T) {
	tests := []struct {
		mode DisplayMode
		want byte
	}{
		{DisplayBlank, 0x08},
		{DisplayAllOn, 0x09},
		{DisplayNormal, 0x0c},
		{DisplayInverse, 0x0d},
	}
	for _, test := range tests {
		t.Run(test.mode.String(), func(t *testing.T) {
			c, r := newTestController(0)
			if err := c.SetDisplayMode(test.mode); err != nil {
				t.Fatal(err)
			}
			if v := r.commands(); !bytes.Equal(v, []byte{test.want}) {
				t.Errorf("expected %#02x, got % x", test.want, v)
			}
		})
	}
}

package lzop

import "encoding/binary"

// appender accumulates wire-format bytes while folding them through a
// running Adler-32 sum.  Buffer and sum always advance in lock-step;
// the one exception is raw, used for block payloads, which the format
// excludes from the running checksum.
type appender struct {
	buf []byte
	sum uint32
}

func newAppender() *appender {
	return &appender{sum: adlerInit}
}

func (a *appender) uint8(v uint8) {
	a.buf = append(a.buf, v)
	a.sum = adlerUpdate(a.sum, a.buf[len(a.buf)-1:])
}

func (a *appender) uint16(v uint16) {
	a.buf = binary.BigEndian.AppendUint16(a.buf, v)
	a.sum = adlerUpdate(a.sum, a.buf[len(a.buf)-2:])
}

func (a *appender) uint32(v uint32) {
	a.buf = binary.BigEndian.AppendUint32(a.buf, v)
	a.sum = adlerUpdate(a.sum, a.buf[len(a.buf)-4:])
}

func (a *appender) bytes(p []byte) {
	a.buf = append(a.buf, p...)
	a.sum = adlerUpdate(a.sum, p)
}

// raw appends p without touching the running sum.
func (a *appender) raw(p []byte) {
	a.buf = append(a.buf, p...)
}

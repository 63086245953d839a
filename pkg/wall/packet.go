package wall

import (
	"github.com/tauraamui/videowall/pkg/raster"
	"github.com/tauraamui/xerror"
)

// Stream resolution agreed with the wall controller. Both ends must be built
// with the same values, nothing on the wire negotiates them.
const (
	StreamWidth  = 280
	StreamHeight = 76
)

// HeaderLength is the size of the magic prefix of every packet.
const HeaderLength = 3

// Magic is the ASCII "IMG" packet prefix.
var Magic = [HeaderLength]byte{0x49, 0x4D, 0x47}

// PacketLength is the datagram size for a stream of w x h pixels:
// the header followed by three colour bytes per pixel.
func PacketLength(w, h int) int {
	return HeaderLength + w*h*3
}

// NewPacketBuffer allocates a packet for w x h pixels with the header
// already in place.
func NewPacketBuffer(w, h int) []byte {
	buf := make([]byte, PacketLength(w, h))
	copy(buf, Magic[:])
	return buf
}

// WritePayload overwrites the pixel region of packet with r in row-major
// R,G,B order. Alpha is never written. The header bytes are left untouched.
func WritePayload(packet []byte, r *raster.Raster) error {
	if want := PacketLength(r.W, r.H); len(packet) != want {
		return xerror.Errorf("%w: %dx%d raster needs a %d byte packet, got %d", ErrInvalidRaster, r.W, r.H, want, len(packet))
	}

	n := r.Format.Channels()
	pix := r.Pix
	i := HeaderLength
	if n == 3 {
		copy(packet[i:], pix)
		return nil
	}

	for j := 0; j+n <= len(pix); j += n {
		packet[i], packet[i+1], packet[i+2] = pix[j], pix[j+1], pix[j+2]
		i += 3
	}
	return nil
}

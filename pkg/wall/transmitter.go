package wall

import (
	"net"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/tauraamui/videowall/pkg/log"
	"github.com/tauraamui/videowall/pkg/raster"
	"github.com/tauraamui/videowall/pkg/resample"
	"github.com/tauraamui/xerror"
)

// Conn is the connected datagram socket a Transmitter writes packets to.
// *net.UDPConn satisfies it.
type Conn interface {
	Write([]byte) (int, error)
	Close() error
}

type Resolver func(network, address string) (*net.UDPAddr, error)

type Dialer func(raddr *net.UDPAddr) (Conn, error)

type Stats struct {
	FramesSent    uint64
	FramesDropped uint64
	BytesSent     uint64
	LastErr       error
}

type state int

const (
	uninitialized state = iota
	open
	closed
)

// Transmitter packs rasters into wall packets and sends each one as a single
// UDP datagram. StreamImage must be called from one goroutine at a time, the
// packet buffer is reused between calls.
type Transmitter struct {
	id         string
	host       string
	port       int
	width      int
	height     int
	scaler     resample.Scaler
	report     func(error)
	resolve    Resolver
	dial       Dialer
	buffer     []byte
	mu         sync.Mutex
	scaleMode  resample.Mode
	state      state
	conn       Conn
	remoteAddr string
	stats      Stats
}

type Option func(*Transmitter)

// WithResolution overrides the stream resolution. Only useful against a
// controller built for the same size.
func WithResolution(w, h int) Option {
	return func(t *Transmitter) {
		if w > 0 && h > 0 {
			t.width, t.height = w, h
		}
	}
}

// WithScaleMode sets the starting scale mode. An unknown mode is reported
// once New has applied every option and the transmitter falls back to
// Stretch.
func WithScaleMode(m resample.Mode) Option {
	return func(t *Transmitter) {
		t.scaleMode = m
	}
}

func WithScaler(s resample.Scaler) Option {
	return func(t *Transmitter) {
		if s != nil {
			t.scaler = s
		}
	}
}

// WithReporter sets the sink every failure is reported to. Defaults to the
// error log.
func WithReporter(report func(error)) Option {
	return func(t *Transmitter) {
		if report != nil {
			t.report = report
		}
	}
}

func WithResolver(r Resolver) Option {
	return func(t *Transmitter) {
		if r != nil {
			t.resolve = r
		}
	}
}

func WithDialer(d Dialer) Option {
	return func(t *Transmitter) {
		if d != nil {
			t.dial = d
		}
	}
}

func New(host string, port int, opts ...Option) *Transmitter {
	t := &Transmitter{
		id:        uuid.NewString(),
		host:      host,
		port:      port,
		width:     StreamWidth,
		height:    StreamHeight,
		scaleMode: resample.Stretch,
		scaler:    resample.Default(),
		report:    func(err error) { log.Error("%v", err) },
		resolve:   net.ResolveUDPAddr,
		dial:      dialUDP,
	}

	for _, opt := range opts {
		opt(t)
	}

	if !t.scaleMode.Valid() {
		t.report(xerror.Errorf("%w: %d", ErrUnknownScaleMode, int(t.scaleMode)).AsKind(ConfigError))
		t.scaleMode = resample.Stretch
	}

	t.buffer = NewPacketBuffer(t.width, t.height)
	return t
}

func dialUDP(raddr *net.UDPAddr) (Conn, error) {
	return net.DialUDP("udp", nil, raddr)
}

func (t *Transmitter) ID() string {
	return t.id
}

func (t *Transmitter) Address() string {
	return net.JoinHostPort(t.host, strconv.Itoa(t.port))
}

func (t *Transmitter) Resolution() raster.Dimensions {
	return raster.Dimensions{W: t.width, H: t.height}
}

func (t *Transmitter) PacketLength() int {
	return len(t.buffer)
}

// Start resolves the wall host and connects the UDP socket, fixing the
// default destination of every later send. Starting an open transmitter does
// nothing, starting a stopped one fails with ErrClosed.
func (t *Transmitter) Start() error {
	err := t.start()
	if err != nil {
		t.report(err)
	}
	return err
}

func (t *Transmitter) start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case open:
		return nil
	case closed:
		return xerror.Errorf("%w: %s", ErrClosed, t.Address()).AsKind(EndpointError)
	}

	if t.port < 1 || t.port > 65535 {
		return xerror.Errorf("%w: invalid port %d", ErrResolve, t.port).AsKind(EndpointError)
	}

	raddr, err := t.resolve("udp", t.Address())
	if err != nil {
		return xerror.Errorf("%w: the host could not be found: %s: %v", ErrResolve, t.host, err).AsKind(EndpointError)
	}

	conn, err := t.dial(raddr)
	if err != nil {
		return xerror.Errorf("%w: unable to connect socket to %s: %v", ErrResolve, raddr, err).AsKind(EndpointError)
	}

	t.conn = conn
	t.remoteAddr = raddr.String()
	t.state = open
	log.Info("Wall transmitter [%s] (videowall %s) streaming %dx%d frames to %s", t.id, Version, t.width, t.height, t.remoteAddr)
	return nil
}

// Stop releases the socket. The transmitter cannot be started again.
// Stopping more than once is harmless.
func (t *Transmitter) Stop() {
	if err := t.Close(); err != nil {
		t.report(err)
	}
}

func (t *Transmitter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == closed {
		return nil
	}

	wasOpen := t.state == open
	t.state = closed
	conn := t.conn
	t.conn = nil
	if !wasOpen || conn == nil {
		return nil
	}

	log.Info("Closing wall transmitter [%s] to %s", t.id, t.remoteAddr)
	if err := conn.Close(); err != nil {
		return xerror.Errorf("unable to close socket to %s: %w", t.remoteAddr, err).AsKind(EndpointError)
	}
	return nil
}

func (t *Transmitter) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == open && t.conn != nil
}

// SetScaleMode switches between Crop and Stretch. Any other value is
// reported and the current mode is kept.
func (t *Transmitter) SetScaleMode(m resample.Mode) error {
	if !m.Valid() {
		err := xerror.Errorf("%w: %d", ErrUnknownScaleMode, int(m)).AsKind(ConfigError)
		t.report(err)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.scaleMode = m
	return nil
}

func (t *Transmitter) ScaleMode() resample.Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scaleMode
}

func (t *Transmitter) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// StreamImage fits r to the stream resolution, packs it and sends it as one
// datagram. Failures are reported and returned, the frame is dropped and the
// transmitter stays usable. Nothing is ever retried.
func (t *Transmitter) StreamImage(r *raster.Raster) error {
	err := t.streamImage(r)
	if err != nil {
		t.report(err)
	}
	return err
}

func (t *Transmitter) streamImage(r *raster.Raster) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != open || t.conn == nil {
		return t.drop(xerror.Errorf("%w", ErrNotConnected).AsKind(TransportError))
	}

	frame := r
	if r == nil || r.W != t.width || r.H != t.height || r.Validate() != nil {
		resampled, err := resample.ResampleWith(t.scaler, r, t.width, t.height, t.scaleMode)
		if err != nil {
			return t.drop(xerror.Errorf("unable to resample frame: %w", err).AsKind(InputError))
		}
		frame = resampled
	}

	if err := WritePayload(t.buffer, frame); err != nil {
		return t.drop(xerror.Errorf("%w", err).AsKind(InputError))
	}

	n, err := t.conn.Write(t.buffer)
	if err != nil {
		return t.drop(
			xerror.Errorf("%w: %v", ErrSend, err).AsKind(TransportError).WithParam("wall", t.remoteAddr),
		)
	}
	if n != len(t.buffer) {
		return t.drop(
			xerror.Errorf("%w: wrote %d of %d bytes", ErrSend, n, len(t.buffer)).AsKind(TransportError).WithParam("wall", t.remoteAddr),
		)
	}

	t.stats.FramesSent++
	t.stats.BytesSent += uint64(n)
	log.Debug("Sent %d byte frame to wall [%s]", n, t.remoteAddr)
	return nil
}

// drop must be called with mu held.
func (t *Transmitter) drop(err error) error {
	t.stats.FramesDropped++
	t.stats.LastErr = err
	return err
}

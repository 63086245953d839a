package streamer_test

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tacusci/logging/v2"
	"github.com/tauraamui/videowall/pkg/configdef"
	"github.com/tauraamui/videowall/pkg/resample"
	"github.com/tauraamui/videowall/pkg/streamer"
	"github.com/tauraamui/videowall/pkg/wall"
)

type mockResolver struct {
	values configdef.Values
	err    error
}

func (m mockResolver) Resolve() (configdef.Values, error) {
	return m.values, m.err
}

type ServerTestSuite struct {
	suite.Suite
	listener *net.UDPConn
	port     int
}

func (suite *ServerTestSuite) SetupSuite() {
	logging.CurrentLoggingLevel = logging.SilentLevel
}

func (suite *ServerTestSuite) TearDownSuite() {
	logging.CurrentLoggingLevel = logging.WarnLevel
}

func (suite *ServerTestSuite) SetupTest() {
	listener, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), listener.SetReadBuffer(1<<20))
	suite.listener = listener
	suite.port = listener.LocalAddr().(*net.UDPAddr).Port
}

func (suite *ServerTestSuite) TearDownTest() {
	suite.listener.Close()
}

func (suite *ServerTestSuite) wallConfig(title string) configdef.Wall {
	return configdef.Wall{
		Title:     title,
		Host:      "127.0.0.1",
		Port:      suite.port,
		ScaleMode: "stretch",
		Scaler:    "nearest",
		FPS:       30,
		Source:    configdef.Source{Kind: "testpattern", Label: title},
	}
}

func waitForShutdown(t *testing.T, done chan interface{}) {
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func (suite *ServerTestSuite) TestNewServerFailsOnConfigError() {
	_, err := streamer.NewServer(mockResolver{err: errors.New("no config")}, nil)
	assert.EqualError(suite.T(), err, "no config")
}

func (suite *ServerTestSuite) TestServerStreamsTestPatternToWall() {
	disabled := suite.wallConfig("disabled")
	disabled.Disabled = true

	server, err := streamer.NewServer(mockResolver{values: configdef.Values{
		Walls: []configdef.Wall{suite.wallConfig("lab"), disabled},
	}}, resample.Resolve)
	require.NoError(suite.T(), err)

	require.Empty(suite.T(), server.Connect())
	server.SetupProcesses()
	server.RunProcesses()

	buf := make([]byte, 1<<16)
	require.NoError(suite.T(), suite.listener.SetReadDeadline(time.Now().Add(3*time.Second)))
	n, _, err := suite.listener.ReadFromUDP(buf)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), wall.PacketLength(wall.StreamWidth, wall.StreamHeight), n)
	assert.Equal(suite.T(), []byte("IMG"), buf[:3])

	waitForShutdown(suite.T(), server.Shutdown())

	stats := server.Stats()
	require.Contains(suite.T(), stats, "lab")
	assert.NotContains(suite.T(), stats, "disabled")
	assert.GreaterOrEqual(suite.T(), stats["lab"].FramesSent, uint64(1))
}

func (suite *ServerTestSuite) TestConnectReportsInvalidScaleModeAndKeepsOthers() {
	broken := suite.wallConfig("broken")
	broken.ScaleMode = "fill"

	server, err := streamer.NewServer(mockResolver{values: configdef.Values{
		Walls: []configdef.Wall{broken, suite.wallConfig("lab")},
	}}, nil, wall.WithReporter(func(error) {}))
	require.NoError(suite.T(), err)

	errs := server.Connect()
	require.Len(suite.T(), errs, 1)
	assert.True(suite.T(), errors.Is(errs[0], resample.ErrUnknownMode))
	assert.Len(suite.T(), server.Stats(), 1)

	server.SetupProcesses()
	server.RunProcesses()
	waitForShutdown(suite.T(), server.Shutdown())
}

func (suite *ServerTestSuite) TestConnectReportsUnresolvableWallAndKeepsOthers() {
	unreachable := suite.wallConfig("unreachable")
	unreachable.Host = "no-such-wall.invalid"

	resolveHost := func(network, address string) (*net.UDPAddr, error) {
		host, _, err := net.SplitHostPort(address)
		if err != nil {
			return nil, err
		}
		if host == "no-such-wall.invalid" {
			return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
		}
		return net.ResolveUDPAddr(network, address)
	}

	server, err := streamer.NewServer(mockResolver{values: configdef.Values{
		Walls: []configdef.Wall{unreachable, suite.wallConfig("lab")},
	}}, nil, wall.WithReporter(func(error) {}), wall.WithResolver(resolveHost))
	require.NoError(suite.T(), err)

	errs := server.Connect()
	require.Len(suite.T(), errs, 1)
	assert.True(suite.T(), errors.Is(errs[0], wall.ErrResolve))
	assert.Contains(suite.T(), errs[0].Error(), "unable to connect to wall [unreachable]")

	stats := server.Stats()
	assert.Len(suite.T(), stats, 1)
	assert.Contains(suite.T(), stats, "lab")

	server.SetupProcesses()
	server.RunProcesses()
	waitForShutdown(suite.T(), server.Shutdown())
}

func (suite *ServerTestSuite) TestShutdownTwiceDoesNotPanic() {
	server, err := streamer.NewServer(mockResolver{}, nil)
	require.NoError(suite.T(), err)

	done := server.Shutdown()
	assert.NotPanics(suite.T(), func() {
		waitForShutdown(suite.T(), server.Shutdown())
	})
	waitForShutdown(suite.T(), done)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, &ServerTestSuite{})
}

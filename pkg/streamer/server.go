package streamer

import (
	"context"
	"fmt"
	"sync"

	"github.com/tauraamui/videowall/pkg/config/schedule"
	"github.com/tauraamui/videowall/pkg/configdef"
	"github.com/tauraamui/videowall/pkg/log"
	"github.com/tauraamui/videowall/pkg/resample"
	"github.com/tauraamui/videowall/pkg/sketch"
	"github.com/tauraamui/videowall/pkg/streamer/process"
	"github.com/tauraamui/videowall/pkg/wall"
	"github.com/tauraamui/xerror"
)

// ScalerResolver maps a configured scaler name onto a scaler.
type ScalerResolver func(name string) resample.Scaler

type Server struct {
	config       configdef.Values
	scalers      ScalerResolver
	wallOpts     []wall.Option
	mu           sync.Mutex
	walls        []*connection
	processes    []process.Process
	shutdownOnce sync.Once
	shutdownDone chan interface{}
}

type connection struct {
	title  string
	fps    int
	sched  schedule.Schedule
	source sketch.Source
	tx     *wall.Transmitter
}

// NewServer loads the configuration from the resolver. Extra options are
// applied to every wall transmitter after the configured ones.
func NewServer(resolver configdef.Resolver, scalers ScalerResolver, opts ...wall.Option) (*Server, error) {
	values, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}

	if scalers == nil {
		scalers = resample.Resolve
	}

	return &Server{
		config:       values,
		scalers:      scalers,
		wallOpts:     opts,
		shutdownDone: make(chan interface{}),
	}, nil
}

func (s *Server) Connect() []error {
	return s.ConnectWithCancel(context.Background())
}

// ConnectWithCancel opens every enabled wall. A wall that fails to open is
// reported in the returned errors and left out, the others carry on.
func (s *Server) ConnectWithCancel(ctx context.Context) []error {
	var errs []error

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.config.Walls {
		select {
		case <-ctx.Done():
			return errs
		default:
			if w.Disabled {
				log.Warn("Wall [%s] is disabled... skipping...", w.Title)
				continue
			}

			log.Info("Connecting to wall: [%s]...", w.Title)
			conn, err := s.connect(w)
			if err != nil {
				errs = append(errs, xerror.Errorf("unable to connect to wall [%s]: %w", w.Title, err))
				continue
			}

			log.Info("Connected successfully to wall: [%s]", w.Title)
			s.walls = append(s.walls, conn)
		}
	}
	return errs
}

func (s *Server) connect(w configdef.Wall) (*connection, error) {
	mode, err := resample.ParseMode(w.ScaleMode)
	if err != nil {
		return nil, err
	}

	source, err := sketch.Resolve(sketch.Settings{
		Kind:   w.Source.Kind,
		Label:  w.Source.Label,
		Path:   w.Source.Path,
		Width:  wall.StreamWidth,
		Height: wall.StreamHeight,
	})
	if err != nil {
		return nil, err
	}

	opts := append([]wall.Option{
		wall.WithScaleMode(mode),
		wall.WithScaler(s.scalers(w.Scaler)),
	}, s.wallOpts...)
	tx := wall.New(w.Host, w.Port, opts...)

	if err := tx.Start(); err != nil {
		source.Close()
		return nil, err
	}

	return &connection{
		title:  w.Title,
		fps:    w.FPS,
		sched:  schedule.NewSchedule(w.Schedule),
		source: source,
		tx:     tx,
	}, nil
}

func (s *Server) SetupProcesses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.walls {
		proc := process.New(process.Settings{
			WaitForShutdownMsg: fmt.Sprintf("Stopping streaming to wall [%s]...", conn.title),
			Process: process.StreamProcess(process.StreamSettings{
				Title:    conn.title,
				Source:   conn.source,
				Wall:     conn.tx,
				FPS:      conn.fps,
				Schedule: conn.sched,
			}),
		}).Setup()
		s.processes = append(s.processes, proc)
	}
}

func (s *Server) RunProcesses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, proc := range s.processes {
		proc.Start()
	}
}

// Stats returns the transmitter counters per wall title.
func (s *Server) Stats() map[string]wall.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := map[string]wall.Stats{}
	for _, conn := range s.walls {
		stats[conn.title] = conn.tx.Stats()
	}
	return stats
}

func (s *Server) shutdownProcesses() {
	wg := sync.WaitGroup{}
	wg.Add(len(s.processes))
	for _, proc := range s.processes {
		go func(wg *sync.WaitGroup, proc process.Process) {
			proc.Stop()
			proc.Wait()
			wg.Done()
		}(&wg, proc)
	}
	wg.Wait()
}

func (s *Server) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shutdownProcesses()
	for _, conn := range s.walls {
		log.Warn("Closing wall connection: [%s]...", conn.title)
		conn.tx.Stop()
		if err := conn.source.Close(); err != nil {
			log.Error("unable to close source for wall [%s]: %v", conn.title, err)
		}
	}
	close(s.shutdownDone)
}

// Shutdown stops every render loop, closes the wall sockets and returns a
// channel closed once everything has been released.
func (s *Server) Shutdown() chan interface{} {
	go s.shutdownOnce.Do(s.shutdown)
	return s.shutdownDone
}

package protocol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	myio "github.com/mazrean/teautil/internal/pkg/io"
	"github.com/mazrean/teautil/internal/pkg/json"
	"github.com/mazrean/teautil/internal/pkg/log"

	"golang.org/x/sync/errgroup"
)

// Logger defines the interface for logging operations used throughout the protocol
// It provides methods for different log levels: debug, info, and error
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Handler serves one command. It fills res; res.ID is set by the Process.
type Handler func(ctx context.Context, req *Request, res *Response) error

// Process represents the main protocol handler that manages request/response cycles
// It dispatches commands to the registered handlers and manages communication
type Process struct {
	handlers           map[Cmd]Handler
	closeHandler       func(context.Context) error
	logger             Logger
	responseBufferSize int
}

// processOption holds the configuration options for a Process instance
type processOption struct {
	handlers           map[Cmd]Handler
	closeHandler       func(context.Context) error
	logger             Logger
	responseBufferSize int
}

// ProcessOption defines a function type for configuring Process instances
type ProcessOption func(*processOption)

// WithHandler registers the handler for cmd.
// The close command is always supported and is configured with WithCloseHandler instead.
func WithHandler(cmd Cmd, handler Handler) ProcessOption {
	return func(o *processOption) {
		if cmd == CmdClose || handler == nil {
			return
		}
		o.handlers[cmd] = handler
	}
}

// WithCloseHandler sets the handler for CLOSE commands
// The handler runs at most once, whether triggered by a close request or by the end of input
func WithCloseHandler(handler func(context.Context) error) ProcessOption {
	return func(o *processOption) {
		var (
			once sync.Once
			err  error
		)
		o.closeHandler = func(ctx context.Context) error {
			once.Do(func() {
				err = handler(ctx)
			})
			return err
		}
	}
}

// WithLogger sets the logger instance for the Process
// If not set, a default logger will be used
func WithLogger(logger Logger) ProcessOption {
	return func(o *processOption) {
		o.logger = logger
	}
}

// WithResponseBufferSize sets the size of the response channel buffer
// The size must be positive, otherwise it will be ignored
func WithResponseBufferSize(size int) ProcessOption {
	return func(o *processOption) {
		if size > 0 {
			o.responseBufferSize = size
		}
	}
}

// NewProcess creates a new Process instance with the given options
// It initializes the process with default values and applies the provided options
func NewProcess(options ...ProcessOption) *Process {
	o := &processOption{
		handlers:           map[Cmd]Handler{},
		logger:             log.NewLogger(log.Info),
		responseBufferSize: 100,
	}
	for _, option := range options {
		option(o)
	}

	return &Process{
		handlers:           o.handlers,
		closeHandler:       o.closeHandler,
		logger:             o.logger,
		responseBufferSize: o.responseBufferSize,
	}
}

// Run starts the main processing loop of the Process
// It handles JSON requests from stdin and writes responses to stdout
// The process continues until EOF is received or an error occurs
func (p *Process) Run(ctx context.Context) error {
	return p.run(ctx, os.Stdout, os.Stdin)
}

func (p *Process) run(ctx context.Context, w io.Writer, r io.Reader) (err error) {
	eg, ctx := errgroup.WithContext(ctx)
	resCh := make(chan *Response, p.responseBufferSize)
	defer func() {
		// Close response channel to signal encoder goroutine to exit
		close(resCh)

		if deferErr := p.close(context.WithoutCancel(ctx)); deferErr != nil {
			err = errors.Join(err, deferErr)
		}

		if deferErr := eg.Wait(); deferErr != nil {
			err = errors.Join(err, deferErr)
		}
	}()

	// Send initial response with supported commands
	resCh <- &Response{
		ID:            0,
		KnownCommands: p.knownCommands(),
	}
	eg.Go(func() error {
		return p.encodeWorker(w, resCh)
	})

	err = p.decodeWorker(ctx, r, func(ctx context.Context, req *Request) error {
		res := Response{}
		if err := p.handle(ctx, req, &res); err != nil {
			p.logger.Errorf("handle request(id=%d, command=%s): %v", req.ID, req.Command, err)
			res = Response{Err: err.Error()}
		}
		res.ID = req.ID

		select {
		case resCh <- &res:
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})
	if err != nil {
		err = fmt.Errorf("decode worker: %w", err)
		return
	}

	return
}

// knownCommands returns a list of commands supported by this Process instance
// The supported commands are determined by the presence of their respective handlers
func (p *Process) knownCommands() []Cmd {
	commands := make([]Cmd, 0, len(p.handlers)+1)
	for cmd := range p.handlers {
		commands = append(commands, cmd)
	}
	slices.Sort(commands)

	// Always support the close command
	return append(commands, CmdClose)
}

// encodeWorker handles the encoding and writing of responses to stdout
// It runs in a separate goroutine and processes responses from the response channel
func (p *Process) encodeWorker(w io.Writer, ch <-chan *Response) error {
	encoder := json.NewEncoder(w)

	for resp := range ch {
		if err := encoder.Encode(resp); err != nil {
			p.logger.Errorf("encode response(id=%d): %v", resp.ID, err)
			continue
		}
	}

	return nil
}

// decodeWorker reads one request per line and calls the handler for each request
// Handlers run concurrently; the first handler error cancels the rest
func (p *Process) decodeWorker(ctx context.Context, r io.Reader, handler func(context.Context, *Request) error) (err error) {
	eg, ctx := errgroup.WithContext(ctx)
	defer func() {
		if deferErr := eg.Wait(); deferErr != nil {
			err = errors.Join(err, deferErr)
		}
	}()

	dr := myio.NewDelimReader(r, '\n')
	for {
		err = dr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
				return
			}
			err = fmt.Errorf("next request: %w", err)
			return
		}

		var line []byte
		line, err = io.ReadAll(dr)
		if err != nil {
			err = fmt.Errorf("read request: %w", err)
			return
		}

		var req Request
		err = json.Unmarshal(line, &req)
		if err != nil {
			err = fmt.Errorf("decode request: %w", err)
			return
		}
		p.logger.Debugf("request(id=%d, command=%s)", req.ID, req.Command)

		eg.Go(func() error {
			return handler(ctx, &req)
		})
	}
}

// handle processes individual requests based on their command type
func (p *Process) handle(ctx context.Context, req *Request, res *Response) error {
	if req.Command == CmdClose {
		return p.close(ctx)
	}

	handler, ok := p.handlers[req.Command]
	if !ok {
		if req.Command.known() {
			return fmt.Errorf("%s command not supported", req.Command)
		}
		return fmt.Errorf("unknown command: %s", req.Command)
	}

	return handler(ctx, req, res)
}

func (c Cmd) known() bool {
	switch c {
	case CmdParse, CmdStringify, CmdURLEncode, CmdForm, CmdClose:
		return true
	default:
		return false
	}
}

// close handles the cleanup when the Process is being shut down
// It calls the closeHandler if one is set
func (p *Process) close(ctx context.Context) error {
	if p.closeHandler == nil {
		return nil
	}

	return p.closeHandler(ctx)
}

package internal

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/mazrean/teautil/dynamic"
	"github.com/mazrean/teautil/internal/metrics"
	"github.com/mazrean/teautil/log"
	"github.com/mazrean/teautil/protocol"
	"github.com/mazrean/teautil/util"
)

var (
	requestGauge  = metrics.NewGauge("serve_request")
	durationGauge = metrics.NewGauge("serve_duration")
)

// Teautil serves the serve protocol commands.
type Teautil struct {
	logger     log.Logger
	parseCount atomic.Uint64
	emitCount  atomic.Uint64
	errCount   atomic.Uint64
}

func NewTeautil(logger log.Logger) *Teautil {
	return &Teautil{logger: logger}
}

func (t *Teautil) Parse(_ context.Context, req *protocol.Request, res *protocol.Response) (err error) {
	durationGauge.Stopwatch(func() {
		var v dynamic.Value
		v, err = dynamic.ParseJSON(req.Text)
		if err != nil {
			err = fmt.Errorf("parse text: %w", err)
			return
		}
		res.Value = &v
	}, string(protocol.CmdParse))

	return t.count(&t.parseCount, protocol.CmdParse, err)
}

func (t *Teautil) Stringify(_ context.Context, req *protocol.Request, res *protocol.Response) (err error) {
	durationGauge.Stopwatch(func() {
		v := dynamic.Object(req.Fields)
		res.Result, err = util.ToJSONString(&v)
		if err != nil {
			err = fmt.Errorf("stringify fields: %w", err)
		}
	}, string(protocol.CmdStringify))

	return t.count(&t.emitCount, protocol.CmdStringify, err)
}

func (t *Teautil) URLEncode(_ context.Context, req *protocol.Request, res *protocol.Response) error {
	durationGauge.Stopwatch(func() {
		res.Result = util.URLEncode(req.Text)
	}, string(protocol.CmdURLEncode))

	return t.count(&t.emitCount, protocol.CmdURLEncode, nil)
}

func (t *Teautil) Form(_ context.Context, req *protocol.Request, res *protocol.Response) error {
	durationGauge.Stopwatch(func() {
		res.Result = util.ToFormString(req.Fields)
	}, string(protocol.CmdForm))

	return t.count(&t.emitCount, protocol.CmdForm, nil)
}

func (t *Teautil) count(counter *atomic.Uint64, cmd protocol.Cmd, err error) error {
	requestGauge.Set(1, string(cmd))
	if err != nil {
		t.errCount.Add(1)
		t.logger.Debugf("%s failed: %v", cmd, err)
		return err
	}

	counter.Add(1)
	return nil
}

// Handlers returns the process options registering every command of t.
func (t *Teautil) Handlers() []protocol.ProcessOption {
	return []protocol.ProcessOption{
		protocol.WithHandler(protocol.CmdParse, t.Parse),
		protocol.WithHandler(protocol.CmdStringify, t.Stringify),
		protocol.WithHandler(protocol.CmdURLEncode, t.URLEncode),
		protocol.WithHandler(protocol.CmdForm, t.Form),
		protocol.WithCloseHandler(t.Close),
	}
}

func (t *Teautil) Close(context.Context) error {
	t.logger.Infof("parsed documents: %d", t.parseCount.Load())
	t.logger.Infof("emitted strings: %d", t.emitCount.Load())
	t.logger.Infof("failed requests: %d", t.errCount.Load())
	return nil
}

package heartbeat

import (
	"context"
	"time"

	"github.com/bradlet/hw-rgbcal/bus"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/logx"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicRGBCalState     = bus.T("rgbcal", "state")
)

// DefaultInterval applies until config/heartbeat says otherwise.
const DefaultInterval = 2 * time.Second

type Service struct {
	// Beat, if set, receives each heartbeat instead of the log.
	Beat func(Beat)
}

// Beat is one heartbeat report.
type Beat struct {
	Uptime   time.Duration
	Count    uint32
	Snapshot types.Snapshot
	HasState bool
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	log := logx.Named("heartbeat")
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)
	stateSub := conn.Subscribe(topicRGBCalState)
	defer conn.Unsubscribe(stateSub)

	start := time.Now()
	tick := time.NewTicker(DefaultInterval)
	defer tick.Stop()

	var b Beat
	// loop until context is cancelled, respond to tick, state and config changes
	for {
		select {
		case <-ctx.Done():
			log.Info("heartbeat service stopping")
			return
		case <-tick.C:
			b.Count++
			b.Uptime = time.Since(start)
			s.emit(log, b)
		case msg := <-stateSub.Channel():
			if snap, ok := msg.Payload.(types.Snapshot); ok {
				b.Snapshot, b.HasState = snap, true
			}
		case msg := <-cfgSub.Channel():
			// Change tick interval if needed
			if c, ok := msg.Payload.(types.HeartbeatConfig); ok && c.IntervalS > 0 {
				tick.Reset(time.Duration(c.IntervalS) * time.Second)
				log.Info("heartbeat interval set", "seconds", c.IntervalS)
			}
		}
	}
}

func (s *Service) emit(log logx.Logger, b Beat) {
	if s.Beat != nil {
		s.Beat(b)
		return
	}
	if !b.HasState {
		log.Info("heartbeat", "n", b.Count, "uptime_s", int64(b.Uptime/time.Second))
		return
	}
	l := b.Snapshot.Levels
	log.Info("heartbeat",
		"n", b.Count,
		"uptime_s", int64(b.Uptime/time.Second),
		"red", uint32(l[types.Red]),
		"green", uint32(l[types.Green]),
		"blue", uint32(l[types.Blue]),
		"frame_rate", uint32(b.Snapshot.FrameRate),
		"target", b.Snapshot.Target,
	)
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}

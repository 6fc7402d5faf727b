package worker

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/medlink/doctor-dispatch/internal/rabbitmq/queue"
)

//go:generate mockgen -source=dispatcher.go -destination=../mocks/worker/mock.go -package=mocks

type dispatchConsumer interface {
	Consume(out chan<- queue.DispatchMessage, strategy retry.Strategy) error
}

type messageHandler interface {
	HandleMessage(ctx context.Context, msg queue.DispatchMessage, strategy retry.Strategy)
}

// Dispatcher runs the pool of workers draining the fan-out queue and
// delivering call offers to doctor devices.
type Dispatcher struct {
	queue   dispatchConsumer
	handler messageHandler
}

func NewDispatcher(q dispatchConsumer, h messageHandler) *Dispatcher {
	return &Dispatcher{
		queue:   q,
		handler: h,
	}
}

func (d *Dispatcher) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	var wg sync.WaitGroup
	msgChan := make(chan queue.DispatchMessage, workerCount*10)

	go func() {
		if err := d.queue.Consume(msgChan, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume dispatch messages")
		}
	}()

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("dispatch-worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("dispatch-worker-%d shutting down", id)
					return
				case msg, ok := <-msgChan:
					if !ok {
						zlog.Logger.Printf("dispatch-worker-%d channel closed, shutting down", id)
						return
					}

					d.handler.HandleMessage(ctx, msg, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Print("dispatcher stopped")
}

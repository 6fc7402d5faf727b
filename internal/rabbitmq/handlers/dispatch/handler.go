package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/medlink/doctor-dispatch/internal/model"
	"github.com/medlink/doctor-dispatch/internal/rabbitmq/queue"
)

type pushSender interface {
	Send(token string, data map[string]string) error
}

type callService interface {
	GetRequestStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Status, error)
}

// Handler delivers one fan-out message to one doctor's device.
type Handler struct {
	sender  pushSender
	service callService
}

func NewHandler(sender pushSender, svc callService) *Handler {
	return &Handler{sender: sender, service: svc}
}

// HandleMessage pushes the call offer to the doctor's device with bounded
// retry. A request that went terminal while the message sat in the queue
// is skipped; delivery failure after all attempts is logged and dropped,
// never surfaced to the caller.
func (h *Handler) HandleMessage(ctx context.Context, msg queue.DispatchMessage, strategy retry.Strategy) {
	status, err := h.service.GetRequestStatus(ctx, strategy, msg.RequestID)
	if err != nil {
		zlog.Logger.Printf("failed to get status for %s: %v", msg.RequestID, err)
		return
	}

	if status.IsTerminal() {
		zlog.Logger.Printf("request %s is %s, skipping notification", msg.RequestID, status)
		return
	}

	data := map[string]string{
		"request_id":   msg.RequestID.String(),
		"channel_name": msg.ChannelName,
		"language":     msg.Language,
		"credential":   msg.Credential.Token,
		"expires_at":   msg.ExpiresAt.Format(time.RFC3339),
	}

	err = retry.Do(func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return h.sender.Send(msg.PushToken, data)
		}
	}, strategy)

	if err != nil {
		zlog.Logger.Printf("giving up on doctor %s for request %s: %v", msg.DoctorID, msg.RequestID, err)
		return
	}

	zlog.Logger.Printf("call offer %s delivered to doctor %s", msg.RequestID, msg.DoctorID)
}

package funding

import (
	"context"

	"civicfund-go/internal/model"
)

type Notifier interface {
	Notify(ctx context.Context, event model.Event) error
}

// Messenger leaves short messages for a wallet: Alert for rejected
// requests, Inform for accepted ones that have no event of their own.
type Messenger interface {
	Alert(wallet, message string)
	Inform(wallet, message string)
}

// Package notify fans a report-creation event out to every registered
// operator. Fire-and-forget: no dedup, no retry, no delivery confirmation.
package notify

import (
	"fmt"
	"time"

	"github.com/apex/log"

	"segnalapp/csvstore"
	"segnalapp/models"
)

// EmailSender delivers one message to one recipient. Delivery is best
// effort on top of the persisted rows, never instead of them.
type EmailSender interface {
	Send(recipient, subject, body string) error
}

type Dispatcher struct {
	store  csvstore.Store
	sender EmailSender // nil disables email delivery
	now    func() time.Time
}

func NewDispatcher(store csvstore.Store, sender EmailSender) *Dispatcher {
	return &Dispatcher{store: store, sender: sender, now: time.Now}
}

// NotifyOnCreate writes one notification row per user holding the operator
// role at call time. Operators registered later see nothing retroactively.
// All rows go out in a single persist; if that persist fails they are all
// lost, with no compensating action.
func (d *Dispatcher) NotifyOnCreate(reportID int64, title string) error {
	users, err := d.store.Load(models.TableUsers)
	if err != nil {
		return err
	}
	var operators []string
	for _, r := range users.Rows {
		if models.Role(r["role"]) == models.RoleOperator {
			operators = append(operators, r["email"])
		}
	}
	if len(operators) == 0 {
		return nil
	}

	message := fmt.Sprintf("Nuova segnalazione ID %d - %s", reportID, title)
	now := d.now()
	err = d.store.Mutate(models.TableNotifications, func(t *csvstore.Table) error {
		for _, op := range operators {
			n := models.Notification{
				ID:            t.NextID("notification_id"),
				OperatorEmail: op,
				Message:       message,
				Timestamp:     now,
			}
			t.Rows = append(t.Rows, n.Row())
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Infof("Notified %d operators about report %d", len(operators), reportID)

	if d.sender != nil {
		for _, op := range operators {
			if err := d.sender.Send(op, "Nuova segnalazione", message); err != nil {
				log.WithError(err).Warnf("Email to %s failed", op)
			}
		}
	}
	return nil
}

// ListForOperator returns the operator's inbox in insertion order.
func (d *Dispatcher) ListForOperator(email string) ([]models.Notification, error) {
	t, err := d.store.Load(models.TableNotifications)
	if err != nil {
		return nil, err
	}
	var out []models.Notification
	for _, r := range t.Rows {
		if r["operator_email"] == email {
			out = append(out, models.NotificationFromRow(r))
		}
	}
	return out, nil
}

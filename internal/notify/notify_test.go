package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koltukutsu/listele/internal/lead"
	"github.com/koltukutsu/listele/internal/notify"
	"github.com/koltukutsu/listele/pkg/email"
)

type captureSender struct {
	msgs []email.Message
}

func (c *captureSender) Send(ctx context.Context, msg email.Message) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

func TestNotifyNewLead(t *testing.T) {
	t.Parallel()

	t.Run("includes the submitted fields", func(t *testing.T) {
		t.Parallel()
		sender := &captureSender{}
		n := notify.NewLeadNotifier(sender)

		err := n.NotifyNewLead(context.Background(), "owner@example.com", "Kahve Aboneliği", &lead.Lead{
			Name:  "Ayşe",
			Email: "ayse@example.com",
		})
		require.NoError(t, err)

		require.Len(t, sender.msgs, 1)
		msg := sender.msgs[0]
		assert.Equal(t, "owner@example.com", msg.To)
		assert.Equal(t, "Yeni kayıt: Kahve Aboneliği", msg.Subject)
		assert.Contains(t, msg.BodyHTML, "Ayşe")
		assert.Contains(t, msg.BodyHTML, "ayse@example.com")
		assert.NotContains(t, msg.BodyHTML, "Telefon")
	})

	t.Run("escapes markup in submissions", func(t *testing.T) {
		t.Parallel()
		sender := &captureSender{}
		n := notify.NewLeadNotifier(sender)

		err := n.NotifyNewLead(context.Background(), "owner@example.com", "Proje", &lead.Lead{
			Name: `<script>alert("x")</script>`,
		})
		require.NoError(t, err)

		require.Len(t, sender.msgs, 1)
		assert.NotContains(t, sender.msgs[0].BodyHTML, "<script>")
	})
}

// Package chat provides the private channel between an order's customer and
// contractor. A chat is provisioned lazily, exactly once per order, when the
// order is first accepted and the customer is known. The membership check is
// the contract the message relay uses to authorize delivery.
package chat

import (
	"errors"
	"strings"
	"time"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
)

// ErrChatIsNotConstructed is returned when a Chat instance was not created
// through NewChat or RestoreChat.
var ErrChatIsNotConstructed = errors.New("Chat must be created via NewChat or RestoreChat")

// Chat is a paired channel between exactly two identities: the order's
// customer and its contractor. Membership never changes after creation.
type Chat struct {
	id         kernel.UUID
	customerID kernel.UUID
	masterID   kernel.UUID
	createdAt  time.Time

	isConstructed bool
}

// NewChat creates a chat pairing a customer with a contractor.
func NewChat(id, customerID, masterID kernel.UUID, now time.Time) (*Chat, error) {
	chat := &Chat{
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		chat.setID(id),
		chat.setCustomerID(customerID),
		chat.setMasterID(masterID),
	); err != nil {
		return nil, err
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("creation time")
	}

	return chat, nil
}

// RestoreChat reconstructs a chat from persistent storage.
func RestoreChat(id, customerID, masterID kernel.UUID, createdAt time.Time) (*Chat, error) {
	return NewChat(id, customerID, masterID, createdAt)
}

// Validate ensures the Chat was created through a constructor.
func (c *Chat) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrChatIsNotConstructed
	}
	return nil
}

// ID returns the chat's unique identifier.
func (c *Chat) ID() kernel.UUID { return c.id }

// CustomerID returns the customer participant.
func (c *Chat) CustomerID() kernel.UUID { return c.customerID }

// MasterID returns the contractor participant.
func (c *Chat) MasterID() kernel.UUID { return c.masterID }

// CreatedAt returns the provisioning timestamp.
func (c *Chat) CreatedAt() time.Time { return c.createdAt }

// IsMember reports whether userID is one of the two participants. The relay
// consults this before persisting or delivering any message.
func (c *Chat) IsMember(userID kernel.UUID) bool {
	return c.customerID.IsEqual(userID) || c.masterID.IsEqual(userID)
}

// PeerOf returns the other participant of the chat.
// Fails when userID is not a member.
func (c *Chat) PeerOf(userID kernel.UUID) (kernel.UUID, error) {
	switch {
	case c.customerID.IsEqual(userID):
		return c.masterID, nil
	case c.masterID.IsEqual(userID):
		return c.customerID, nil
	default:
		return kernel.UUID{}, errs.NewObjectNotFoundError("chat member", userID.String())
	}
}

func (c *Chat) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Chat) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *Chat) setMasterID(masterID kernel.UUID) error {
	if err := masterID.Validate(); err != nil {
		return err
	}
	c.masterID = masterID
	return nil
}

// Message is one chat message. Messages are immutable once created; the
// sender's role is recorded so clients can render the two sides without
// resolving user identities.
type Message struct {
	id         kernel.UUID
	chatID     kernel.UUID
	fromUserID kernel.UUID
	toUserID   kernel.UUID
	fromRole   kernel.Role
	text       string
	createdAt  time.Time
}

// NewMessage creates a message inside a chat. The sender must be a member;
// callers resolve the recipient via PeerOf.
func NewMessage(
	id, chatID, fromUserID, toUserID kernel.UUID,
	fromRole kernel.Role,
	text string,
	now time.Time,
) (Message, error) {
	if err := errors.Join(
		id.Validate(),
		chatID.Validate(),
		fromUserID.Validate(),
		toUserID.Validate(),
		fromRole.Validate(),
	); err != nil {
		return Message{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Message{}, errs.NewValueIsRequiredError("message text")
	}
	if now.IsZero() {
		return Message{}, errs.NewValueIsRequiredError("creation time")
	}

	return Message{
		id:         id,
		chatID:     chatID,
		fromUserID: fromUserID,
		toUserID:   toUserID,
		fromRole:   fromRole,
		text:       text,
		createdAt:  now,
	}, nil
}

// ID returns the message's unique identifier.
func (m Message) ID() kernel.UUID { return m.id }

// ChatID returns the chat the message belongs to.
func (m Message) ChatID() kernel.UUID { return m.chatID }

// FromUserID returns the sender.
func (m Message) FromUserID() kernel.UUID { return m.fromUserID }

// ToUserID returns the recipient.
func (m Message) ToUserID() kernel.UUID { return m.toUserID }

// FromRole returns the sender's role.
func (m Message) FromRole() kernel.Role { return m.fromRole }

// Text returns the message body.
func (m Message) Text() string { return m.text }

// CreatedAt returns the send timestamp.
func (m Message) CreatedAt() time.Time { return m.createdAt }

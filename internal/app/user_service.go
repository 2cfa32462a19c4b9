package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Credentials identify a user by name and pin code.
type Credentials struct {
	Name    string
	PinCode string
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	return required("name", c.Name, "pinCode", c.PinCode)
}

// NewUserInput is the payload of NewUser.
type NewUserInput = Credentials

// NewUser creates a user with a name no other live user holds.
func (s *Service) NewUser(ctx context.Context, in NewUserInput) (_ domain.User, err error) {
	ctx, end, err := s.begin(ctx, "NewUser")
	if err != nil {
		return
	}

	defer func() { end(err) }()

	users := s.store.Users()

	op := Operation[NewUserInput, domain.User, domain.User, domain.User]{
		Name: "newUser",
		Validate: func(ctx context.Context, in NewUserInput) error {
			if err := in.Validate(); err != nil {
				return err
			}

			return ensureNameFree(ctx, users, in.Name)
		},
		Perform: func(_ context.Context, in NewUserInput) (domain.User, error) {
			id, err := s.ids.NewID()
			if err != nil {
				return domain.User{}, fmt.Errorf("generating id: %w", err)
			}

			return domain.User{ID: id, Name: in.Name, PinCode: in.PinCode, Created: s.clock.Now()}, nil
		},
		Verify:  verifyAbsent[NewUserInput](users, "user", func(u domain.User) string { return u.ID }),
		Archive: archive[NewUserInput](users, func(u domain.User) string { return u.ID }),
		Respond: respond[NewUserInput, domain.User],
	}

	return Execute(ctx, s.exec, op, in)
}

// GetMyUserData returns the user whose name and pin code both match.
// Either part being wrong reports NotFound so callers cannot tell which one failed.
func (s *Service) GetMyUserData(ctx context.Context, creds Credentials) (_ domain.User, err error) {
	ctx, end, err := s.begin(ctx, "GetMyUserData")
	if err != nil {
		return
	}

	defer func() { end(err) }()

	if err := creds.Validate(); err != nil {
		return domain.User{}, err
	}

	users, err := s.store.Users().Values(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("listing users: %w", err)
	}

	for _, u := range users {
		if u.Matches(creds.Name, creds.PinCode) {
			return u, nil
		}
	}

	s.loggerFor(ctx, "GetMyUserData").DebugContext(ctx, "no user matches credentials")

	return domain.User{}, domain.NewNotFoundError("user", "")
}

// DeleteUser removes the user, every quote the user wrote, and every comment on those quotes.
// Comments the user left on other users' quotes are kept.
func (s *Service) DeleteUser(ctx context.Context, userID, pinCode string) (_ domain.User, err error) {
	ctx, end, err := s.begin(ctx, "DeleteUser", attribute.String("user.id", userID))
	if err != nil {
		return
	}

	defer func() { end(err) }()

	if err := required("userId", userID, "pinCode", pinCode); err != nil {
		return domain.User{}, err
	}

	var deleted domain.User

	err = s.mutate(ctx, func(ctx context.Context, store ports.Store) error {
		var err error
		deleted, err = s.cascade.DeleteUser(ctx, store, userID, pinCode)

		return err
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("deleting user: %w", err)
	}

	s.loggerFor(ctx, "DeleteUser").InfoContext(ctx, "user removed", slog.String("user_id", userID))

	return deleted, nil
}

// verifyAbsent confirms the freshly built record's id is unused in the collection.
func verifyAbsent[I, T any](
	c ports.Collection[T],
	entity string,
	idOf func(T) string,
) func(context.Context, I, T) (T, error) {
	return func(ctx context.Context, _ I, rec T) (T, error) {
		_, exists, err := c.Get(ctx, idOf(rec))
		if err != nil {
			return rec, err
		}

		if exists {
			return rec, domain.NewConflictError(entity, "id already in use")
		}

		return rec, nil
	}
}

func archive[I, T any](c ports.Collection[T], idOf func(T) string) func(context.Context, I, T) error {
	return func(ctx context.Context, _ I, rec T) error {
		_, _, err := c.Insert(ctx, idOf(rec), rec)

		return err
	}
}

func respond[I, T any](_ context.Context, _ I, rec T) (T, error) {
	return rec, nil
}

package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection = "users"

	// rolesCollection is the legacy role store. Roles written there by old
	// clients are migrated onto the user document on first read; nothing
	// writes to it anymore.
	rolesCollection = "roles"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role record not found")
)

// User is the Firestore document shape. Field names match the documents
// written by the original web client so existing records stay readable.
type User struct {
	ID             string            `firestore:"-"`
	Email          string            `firestore:"email"`
	Password       string            `firestore:"passwordHash"`
	DisplayName    string            `firestore:"displayName"`
	Role           string            `firestore:"role"`
	GrowLogs       map[string]string `firestore:"growLogs"`
	UploadedImages []Image           `firestore:"uploadedImages"`
	JudgeNotes     map[string]string `firestore:"judgeNotes"`
	SubmittedWeeks []string          `firestore:"submittedWeeks"`
	JoinedAt       time.Time         `firestore:"joinedAt"`
	Active         bool              `firestore:"active"`
}

type Image struct {
	URL        string    `firestore:"url"`
	Week       string    `firestore:"week"`
	UploadedAt time.Time `firestore:"uploadedAt"`
	DeleteHash string    `firestore:"deletehash"`
}

type legacyRole struct {
	Role string `firestore:"role"`
}

type UserDAO struct {
	client *firestore.Client
}

func NewUserDAO(client *firestore.Client) *UserDAO {
	return &UserDAO{
		client: client,
	}
}

func (d *UserDAO) users() *firestore.CollectionRef {
	return d.client.Collection(usersCollection)
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	// Email uniqueness is enforced by a lookup rather than a constraint;
	// Firestore has no unique indexes on fields.
	iter := d.users().Where("email", "==", user.Email).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err == nil {
		return User{}, ErrUserEmailExists
	} else if err != iterator.Done {
		return User{}, fmt.Errorf("iter.Next -> %w", err)
	}

	if _, err := d.users().Doc(user.ID).Create(ctx, user); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return User{}, ErrUserEmailExists
		}

		return User{}, err
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id string) (User, error) {
	snap, err := d.users().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return User{}, ErrUserNotFound
		}

		return User{}, err
	}

	return snapToUser(snap)
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	iter := d.users().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	return snapToUser(snap)
}

func (d *UserDAO) FindAll(ctx context.Context) ([]User, error) {
	return d.collect(d.users().Documents(ctx))
}

func (d *UserDAO) FindByRole(ctx context.Context, role string) ([]User, error) {
	return d.collect(d.users().Where("role", "==", role).Documents(ctx))
}

func (d *UserDAO) collect(iter *firestore.DocumentIterator) ([]User, error) {
	defer iter.Stop()

	var users []User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iter.Next -> %w", err)
		}

		user, err := snapToUser(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// UpdateRole writes only the role field. When the user document does not
// exist yet the write falls back to a merge-create, so role resolution has
// write-if-absent semantics.
func (d *UserDAO) UpdateRole(ctx context.Context, id, role string) error {
	_, err := d.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "role", Value: role},
	})
	if status.Code(err) == codes.NotFound {
		_, err = d.users().Doc(id).Set(ctx, map[string]interface{}{"role": role}, firestore.MergeAll)
	}

	return err
}

// FindLegacyRole reads the old roles/{id} document.
func (d *UserDAO) FindLegacyRole(ctx context.Context, id string) (string, error) {
	snap, err := d.client.Collection(rolesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", ErrRoleNotFound
		}

		return "", err
	}

	var rec legacyRole
	if err = snap.DataTo(&rec); err != nil {
		return "", fmt.Errorf("snap.DataTo -> %w", err)
	}
	if rec.Role == "" {
		return "", ErrRoleNotFound
	}

	return rec.Role, nil
}

// MergeWeeklySubmission applies one editor submission as a single update so
// the log, the image union and the submitted-weeks union commit together.
// Every path is field-scoped; sibling weeks are never touched.
func (d *UserDAO) MergeWeeklySubmission(ctx context.Context, id, week, log string, hasLog bool, images []Image) error {
	updates := []firestore.Update{
		{Path: "submittedWeeks", Value: firestore.ArrayUnion(week)},
	}
	if hasLog {
		updates = append(updates, firestore.Update{
			FieldPath: firestore.FieldPath{"growLogs", week},
			Value:     log,
		})
	}
	if len(images) > 0 {
		values := make([]interface{}, 0, len(images))
		for _, img := range images {
			values = append(values, img)
		}
		updates = append(updates, firestore.Update{
			Path:  "uploadedImages",
			Value: firestore.ArrayUnion(values...),
		})
	}

	_, err := d.users().Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrUserNotFound
	}

	return err
}

// SetJudgeNote writes a single judgeNotes entry. Concurrent judges editing
// different weeks or users therefore never clobber each other.
func (d *UserDAO) SetJudgeNote(ctx context.Context, id, week, note string) error {
	_, err := d.users().Doc(id).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"judgeNotes", week}, Value: note},
	})
	if status.Code(err) == codes.NotFound {
		return ErrUserNotFound
	}

	return err
}

// RemoveImage removes exactly the given descriptor by value match, which
// stays correct even if the array was reordered since it was read.
func (d *UserDAO) RemoveImage(ctx context.Context, id string, img Image) error {
	_, err := d.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "uploadedImages", Value: firestore.ArrayRemove(img)},
	})
	if status.Code(err) == codes.NotFound {
		return ErrUserNotFound
	}

	return err
}

func snapToUser(snap *firestore.DocumentSnapshot) (User, error) {
	var user User
	if err := snap.DataTo(&user); err != nil {
		return User{}, fmt.Errorf("snap.DataTo -> %w", err)
	}
	user.ID = snap.Ref.ID

	return user, nil
}

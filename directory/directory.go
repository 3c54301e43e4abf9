// Package directory maps identity-provider subjects to persisted users and
// resolves them into booking actors.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/model"
	"github.com/ariebrainware/clinic-booking/util"
	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// DefaultTTL is how long a resolved actor stays cached.
const DefaultTTL = 5 * time.Minute

// Identity is what the identity provider tells us about a subject.
type Identity struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// Directory is safe for concurrent use.
type Directory struct {
	db     *gorm.DB
	actors *cache.Cache
	logger zerolog.Logger
}

// New returns a Directory caching resolved actors for ttl.
func New(db *gorm.DB, ttl time.Duration, logger zerolog.Logger) *Directory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Directory{
		db:     db,
		actors: cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Sync creates the user on first sight with the patient role and a patient
// profile, and refreshes email and name on later logins. Roles are never
// changed by Sync.
func (d *Directory) Sync(ctx context.Context, id Identity) (*model.User, error) {
	id.Subject = strings.TrimSpace(id.Subject)
	if id.Subject == "" {
		return nil, fmt.Errorf("%w: subject is required", booking.ErrValidation)
	}
	first, last := splitName(id.Name)
	email := strings.TrimSpace(id.Email)

	var user model.User
	created := false
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("subject = ?", id.Subject).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = model.User{Subject: id.Subject, Email: email, FirstName: first, LastName: last, Role: model.RolePatient}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			created = true
			return tx.Create(&model.Patient{UserID: user.ID}).Error
		case err != nil:
			return err
		}

		updates := map[string]interface{}{}
		if email != "" && email != user.Email {
			updates["email"] = email
		}
		if first != "" && (first != user.FirstName || last != user.LastName) {
			updates["first_name"] = first
			updates["last_name"] = last
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if created {
		d.logger.Info().Str("subject", user.Subject).Uint("user_id", user.ID).Str("name", user.FullName()).Msg("user registered")
	}
	d.actors.Delete(user.Subject)
	return &user, nil
}

// splitName normalizes whitespace and splits on the first space.
func splitName(name string) (string, string) {
	name = util.NormalizeName(name)
	first, last, _ := strings.Cut(name, " ")
	return first, last
}

// Resolve returns the actor for subject. Unknown subjects yield
// booking.ErrNotFound.
func (d *Directory) Resolve(ctx context.Context, subject string) (booking.Actor, error) {
	if v, ok := d.actors.Get(subject); ok {
		return v.(booking.Actor), nil
	}

	db := d.db.WithContext(ctx)
	var user model.User
	if err := db.Where("subject = ?", subject).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking.Actor{}, fmt.Errorf("%w: user is not registered", booking.ErrNotFound)
		}
		return booking.Actor{}, err
	}

	actor := booking.Actor{UserID: user.ID, Subject: user.Subject, Role: user.Role}
	var patient model.Patient
	if err := db.Where("user_id = ?", user.ID).Limit(1).Find(&patient).Error; err != nil {
		return booking.Actor{}, err
	}
	if patient.ID != 0 {
		actor.PatientID = &patient.ID
	}
	if user.Role == model.RoleDoctor {
		var doctor model.Doctor
		if err := db.Where("user_id = ?", user.ID).Limit(1).Find(&doctor).Error; err != nil {
			return booking.Actor{}, err
		}
		if doctor.ID != 0 {
			actor.DoctorID = &doctor.ID
		}
	}

	d.actors.Set(subject, actor, cache.DefaultExpiration)
	return actor, nil
}

// Promote turns a patient into a doctor, creating the doctor profile on
// first promotion. Admin only.
func (d *Directory) Promote(ctx context.Context, actor booking.Actor, userID uint) (*model.User, error) {
	return d.changeRole(ctx, actor, userID, model.RolePatient, model.RoleDoctor, func(tx *gorm.DB, user *model.User) error {
		var doctor model.Doctor
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Limit(1).Find(&doctor).Error; err != nil {
			return err
		}
		if doctor.ID == 0 {
			return tx.Create(&model.Doctor{UserID: user.ID, Available: true}).Error
		}
		return tx.Unscoped().Model(&doctor).Updates(map[string]interface{}{"available": true, "deleted_at": nil}).Error
	})
}

// Revert turns a doctor back into a patient. The doctor profile is kept but
// stops accepting reservations. Admin only.
func (d *Directory) Revert(ctx context.Context, actor booking.Actor, userID uint) (*model.User, error) {
	return d.changeRole(ctx, actor, userID, model.RoleDoctor, model.RolePatient, func(tx *gorm.DB, user *model.User) error {
		if err := tx.Model(&model.Doctor{}).Where("user_id = ?", user.ID).Update("available", false).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&model.Patient{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&model.Patient{UserID: user.ID}).Error
	})
}

func (d *Directory) changeRole(ctx context.Context, actor booking.Actor, userID uint, from, to model.Role, profile func(*gorm.DB, *model.User) error) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can change roles", booking.ErrForbidden)
	}

	var user model.User
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user does not exist", booking.ErrNotFound)
			}
			return err
		}
		if user.Role != from {
			return fmt.Errorf("%w: user role is %s, expected %s", booking.ErrValidation, user.Role, from)
		}
		if err := tx.Model(&user).Update("role", to).Error; err != nil {
			return err
		}
		user.Role = to
		return profile(tx, &user)
	})
	if err != nil {
		return nil, err
	}

	d.actors.Delete(user.Subject)
	util.LogRoleChanged(actor.Subject, user.Subject, string(from), string(to))
	return &user, nil
}

// List returns every user. Admin only.
func (d *Directory) List(ctx context.Context, actor booking.Actor) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can list users", booking.ErrForbidden)
	}
	var users []model.User
	if err := d.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Invalidate drops the cached actor for subject.
func (d *Directory) Invalidate(subject string) {
	d.actors.Delete(subject)
}

// ProfileUpdate patches the caller's own profile. Nil fields are left
// unchanged. Role is accepted only so that attempts to set it can be refused.
type ProfileUpdate struct {
	PhoneNumber *string `json:"phone_number,omitempty" example:"+56912345678"`
	Specialty   *string `json:"specialty,omitempty" example:"Orthodontics"`
	Role        *string `json:"role,omitempty" swaggerignore:"true"`
}

// Profile is the caller's user record with the profile matching their role.
type Profile struct {
	User    model.User     `json:"user"`
	Patient *model.Patient `json:"patient,omitempty"`
	Doctor  *model.Doctor  `json:"doctor,omitempty"`
}

const (
	maxPhoneLen     = 20
	maxSpecialtyLen = 100
)

// UpdateProfile edits the phone number of a patient or doctor and the
// specialty of a doctor. Roles cannot be changed here and admins have no
// editable profile.
func (d *Directory) UpdateProfile(ctx context.Context, actor booking.Actor, in ProfileUpdate) (*Profile, error) {
	if in.Role != nil {
		return nil, fmt.Errorf("%w: role cannot be changed through the profile", booking.ErrForbidden)
	}
	if actor.Role == model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin profiles are not editable", booking.ErrForbidden)
	}

	updates := map[string]interface{}{}
	if in.PhoneNumber != nil {
		phone := strings.TrimSpace(*in.PhoneNumber)
		if len(phone) > maxPhoneLen {
			return nil, fmt.Errorf("%w: phone_number must be at most %d characters", booking.ErrValidation, maxPhoneLen)
		}
		updates["phone_number"] = phone
	}
	if in.Specialty != nil {
		if actor.Role != model.RoleDoctor {
			return nil, fmt.Errorf("%w: only doctors have a specialty", booking.ErrValidation)
		}
		specialty := util.NormalizeName(*in.Specialty)
		if len(specialty) > maxSpecialtyLen {
			return nil, fmt.Errorf("%w: specialty must be at most %d characters", booking.ErrValidation, maxSpecialtyLen)
		}
		updates["specialty"] = specialty
	}

	out := &Profile{}
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out.User, actor.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user does not exist", booking.ErrNotFound)
			}
			return err
		}

		var profile interface{}
		switch out.User.Role {
		case model.RoleDoctor:
			out.Doctor = &model.Doctor{}
			profile = out.Doctor
		case model.RolePatient:
			out.Patient = &model.Patient{}
			profile = out.Patient
		default:
			return fmt.Errorf("%w: admin profiles are not editable", booking.ErrForbidden)
		}
		if err := tx.Where("user_id = ?", out.User.ID).First(profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s profile does not exist", booking.ErrNotFound, out.User.Role)
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(profile).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", out.User.ID).First(profile).Error
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info().Str("subject", out.User.Subject).Strs("fields", keys(updates)).Msg("profile updated")
	return out, nil
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ListPatients returns patient profiles with their users, ordered by id.
// Every whitespace-separated term of search must match the first name, last
// name or email. Admin only.
func (d *Directory) ListPatients(ctx context.Context, actor booking.Actor, search string) ([]model.Patient, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can list patients", booking.ErrForbidden)
	}

	q := d.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = patients.user_id AND users.deleted_at IS NULL")
	for _, term := range strings.Fields(search) {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.email) LIKE ?", like, like, like)
	}

	var patients []model.Patient
	if err := q.Order("patients.id ASC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

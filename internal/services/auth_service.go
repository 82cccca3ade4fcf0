package services

import (
	"errors"
	"strings"
	"time"

	"github.com/conectarapak/conectar/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrRecoveryCodeNotFound = errors.New("recovery code not found")

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	Create(user *models.User) error
	Save(user *models.User) error
	UpdateRecoveryCodeHash(userID uint, recoveryHash string) error
	ListWithRecoveryCodeHash() ([]models.User, error)
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// ResolveIdentity persists the synthesized identity: an existing user
// matched by normalized email is refreshed from the identity, anyone else
// is created on the spot.
func (service *AuthService) ResolveIdentity(identity Identity, now time.Time) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))

	if email != "" {
		existing, err := service.users.FindByNormalizedEmail(email)
		if err == nil {
			applyIdentity(&existing, identity)
			if saveErr := service.users.Save(&existing); saveErr != nil {
				return models.User{}, saveErr
			}
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, err
		}
	}

	user := models.User{
		Name:         identity.Name,
		Email:        email,
		DocumentType: identity.DocumentType,
		DocumentID:   identity.DocumentID,
		Phone:        identity.Phone,
		Role:         identity.Role,
		AvatarURL:    identity.AvatarURL,
		IsVerified:   identity.IsVerified,
		CreatedAt:    now,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func applyIdentity(user *models.User, identity Identity) {
	user.Name = identity.Name
	user.Role = identity.Role
	user.AvatarURL = identity.AvatarURL
	user.IsVerified = identity.IsVerified
	if identity.DocumentType != "" {
		user.DocumentType = identity.DocumentType
		user.DocumentID = identity.DocumentID
	}
	if identity.Phone != "" {
		user.Phone = identity.Phone
	}
}

func (service *AuthService) SetRecoveryCode(userID uint, code string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return service.users.UpdateRecoveryCodeHash(userID, string(hash))
}

func (service *AuthService) FindUserByRecoveryCode(code string) (*models.User, error) {
	users, err := service.users.ListWithRecoveryCodeHash()
	if err != nil {
		return nil, err
	}

	for index := range users {
		hash := strings.TrimSpace(users[index].RecoveryCodeHash)
		if hash == "" {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil {
			return &users[index], nil
		}
	}
	return nil, ErrRecoveryCodeNotFound
}

// IdentityFromUser rebuilds the caller-facing identity for an already
// persisted user, used by the recovery path.
func IdentityFromUser(user models.User) Identity {
	return Identity{
		Name:         user.Name,
		DocumentType: user.DocumentType,
		DocumentID:   user.DocumentID,
		Email:        user.Email,
		Phone:        user.Phone,
		Role:         user.Role,
		AvatarURL:    user.AvatarURL,
		IsVerified:   user.IsVerified,
	}
}

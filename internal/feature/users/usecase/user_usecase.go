// Package usecase はusersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"net/mail"

	"user_backend/internal/feature/users/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindAll は全ユーザーをID昇順で取得します。
	FindAll(ctx context.Context) ([]entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update は既存ユーザーの全フィールドを保存します。
	// メールアドレスが他レコードと衝突する場合、ErrEmailAlreadyExistsを返します。
	Update(ctx context.Context, user *entity.User) error

	// Delete は指定されたIDのユーザーを物理削除します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	Delete(ctx context.Context, id uint) error
}

// PasswordCipher は保存前のパスワード暗号化を抽象化します。
// 実装はplatform/cryptoが提供します。
type PasswordCipher interface {
	// Encrypt は平文パスワードを保存用の暗号文に変換します。
	Encrypt(plaintext string) (string, error)
}

// UserInput はユーザーの作成・更新で受け取る入力フィールドです。
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// userUsecase はユーザーCRUDのビジネスロジックを実装します。
type userUsecase struct {
	users  UserRepository
	cipher PasswordCipher

	// enforceOwnership が有効な場合、Update/Delete は actingUserID が
	// 対象レコードのIDと一致するときのみ許可されます。
	// 現状は無効（既存の挙動を維持）。有効化のためのシームとして残します。
	enforceOwnership bool
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, cipher PasswordCipher) *userUsecase {
	return &userUsecase{
		users:  users,
		cipher: cipher,
	}
}

// validateInput は入力フィールドが全て揃っているか、メールアドレスが
// 構文的に正しいかを検証します。
// フレームワーク層のバインディング検証とは独立に、直接呼び出しでも
// 不正な入力を拒否できるようにします。
func validateInput(in UserInput) error {
	if in.FirstName == "" {
		return fmt.Errorf("%w: first_name is required", ErrInvalidInput)
	}
	if in.LastName == "" {
		return fmt.Errorf("%w: last_name is required", ErrInvalidInput)
	}
	if in.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}
	if in.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	return nil
}

// authorize はオーナーシップチェックのシームです。
// enforceOwnership が無効の間は常に許可します。
func (u *userUsecase) authorize(actingUserID, targetID uint) error {
	if !u.enforceOwnership {
		return nil
	}
	if actingUserID != targetID {
		return ErrForbidden
	}
	return nil
}

// reconcile は既存レコードに新しい入力値をフィールド単位でマージします。
// ID と CreatedAt は既存レコードから保持され、変更可能フィールドは
// 全て入力値で置き換えられます。UpdatedAt の更新はストレージに委ねます。
func reconcile(existing *entity.User, in UserInput, encryptedPassword string) *entity.User {
	return &entity.User{
		ID:        existing.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  encryptedPassword,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: existing.UpdatedAt,
	}
}

// Create は暗号化されたパスワードで新規ユーザーを登録します。
// 挿入後、挿入したメールアドレスでレコードを読み直して返します。
func (u *userUsecase) Create(ctx context.Context, in UserInput) (*entity.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	encrypted, err := u.cipher.Encrypt(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt password: %w", err)
	}

	user := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  encrypted,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// ストレージが採番したID・タイムスタンプを含む確定レコードを返すため、
	// 挿入したメールアドレスで読み直します。
	created, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List は全ユーザーをID昇順で返します。レコードが無い場合は空のスライスを返します。
func (u *userUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.users.FindAll(ctx)
}

// Get は指定されたIDのユーザーを返します。
func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	if id == 0 {
		return nil, ErrInvalidUserID
	}
	return u.users.FindByID(ctx, id)
}

// Update は既存ユーザーの変更可能フィールドを入力値で置き換えます。
// パスワードは再暗号化され、ID と CreatedAt は保持されます。
func (u *userUsecase) Update(ctx context.Context, id uint, in UserInput, actingUserID uint) (*entity.User, error) {
	if id == 0 {
		return nil, ErrInvalidUserID
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	existing, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.authorize(actingUserID, existing.ID); err != nil {
		return nil, err
	}

	encrypted, err := u.cipher.Encrypt(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt password: %w", err)
	}

	updated := reconcile(existing, in, encrypted)
	if err := u.users.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は指定されたIDのユーザーを物理削除します。
func (u *userUsecase) Delete(ctx context.Context, id uint, actingUserID uint) error {
	if id == 0 {
		return ErrInvalidUserID
	}

	existing, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.authorize(actingUserID, existing.ID); err != nil {
		return err
	}

	return u.users.Delete(ctx, existing.ID)
}

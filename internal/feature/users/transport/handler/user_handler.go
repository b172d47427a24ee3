// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/feature/users/transport/http/dto"
	"user_backend/internal/feature/users/usecase"
)

// UserUsecase はユーザーCRUD操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	// Create は新規ユーザーを登録し、確定したレコードを返します。
	Create(ctx context.Context, in usecase.UserInput) (*entity.User, error)
	// List は全ユーザーをID昇順で返します。
	List(ctx context.Context) ([]entity.User, error)
	// Get は指定されたIDのユーザーを返します。
	Get(ctx context.Context, id uint) (*entity.User, error)
	// Update は既存ユーザーのフィールドを置き換え、更新後のレコードを返します。
	Update(ctx context.Context, id uint, in usecase.UserInput, actingUserID uint) (*entity.User, error)
	// Delete は指定されたIDのユーザーを削除します。
	Delete(ctx context.Context, id uint, actingUserID uint) error
}

// UserHandler はユーザーCRUD操作のHTTPリクエストを処理します。
// UserUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からUserUsecaseを注入します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// anonymousUserID は認証レイヤーが無い間のactingUserIDです。
// オーナーシップチェックのシームに渡され、チェック無効時は無視されます。
const anonymousUserID uint = 0

// parseID はパスパラメータ:idを正の整数としてパースします。
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, usecase.ErrInvalidUserID
	}
	return uint(id), nil
}

// statusFromError はユースケースのエラーをHTTPステータスとレスポンス用メッセージに分類します。
// NotFound/Conflict以外のストレージ障害では内部情報を公開しません。
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID), errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		return http.StatusConflict, "email already exists"
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden, "not allowed to perform this action"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// Create はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをUserReqにバインド
// - バリデーションエラー時は400を返却
// - メールアドレス重複時は409を返却
// - 成功時は201と公開レコードを返却
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.users.Create(c.Request.Context(), usecase.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		status, msg := statusFromError(err)
		slog.Warn("create user failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}

	slog.Info("user created", "id", created.ID, "email", created.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserResponse(created))
}

// List は全ユーザー取得APIエンドポイントを処理します。
// レコードが無い場合は空のリストと200を返却します。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		status, msg := statusFromError(err)
		slog.Error("list users failed", "error", err)
		c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// Get は単一ユーザー取得APIエンドポイントを処理します。
// - IDが正の整数でない場合は400を返却
// - ユーザーが存在しない場合は404を返却
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		status, msg := statusFromError(err)
		slog.Warn("get user failed", "error", err, "id", id, "remote_addr", c.ClientIP())
		c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update はユーザー更新APIエンドポイントを処理します。
// - IDが正の整数でない場合・ボディ不正時は400を返却
// - ユーザーが存在しない場合は404を返却
// - メールアドレス重複時は409を返却
// - その他のストレージ障害時は500を返却
// - 成功時は更新後の公開レコードを返却
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.UserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update user validation failed", "error", err, "id", id, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.users.Update(c.Request.Context(), id, usecase.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}, anonymousUserID)
	if err != nil {
		status, msg := statusFromError(err)
		slog.Warn("update user failed", "error", err, "id", id, "remote_addr", c.ClientIP())
		c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}

	slog.Info("user updated", "id", updated.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.NewUserResponse(updated))
}

// Delete はユーザー削除APIエンドポイントを処理します。
// - IDが正の整数でない場合は400を返却
// - ユーザーが存在しない場合は404を返却
// - 成功時はボディ無しで204を返却
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.users.Delete(c.Request.Context(), id, anonymousUserID); err != nil {
		status, msg := statusFromError(err)
		slog.Warn("delete user failed", "error", err, "id", id, "remote_addr", c.ClientIP())
		c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}

	slog.Info("user deleted", "id", id, "remote_addr", c.ClientIP())
	c.Status(http.StatusNoContent)
}

package users

import (
	"errors"
	"net/http"
	"strconv"

	"basic-api/internal/api"
	"basic-api/internal/middleware"
	"basic-api/internal/model"
	"basic-api/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	msgInvalidID       = "invalid user ID"
	msgInvalidBody     = "invalid request body"
	msgNotFound        = "user not found"
	msgEmailTaken      = "email already exists"
	msgInternalFailure = "internal server error"
)

// @Summary     List users
// @Description 依 ID 遞增回傳所有使用者，沒有資料時回傳空陣列
// @Tags        users
// @Produce     json
// @Success     200  {array}   api.UserResponse
// @Failure     500  {object}  api.ErrorResponse
// @Router      /api/users [get]
func ListUsersHandler(repo store.UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := repo.List(c.Request().Context())
		if err != nil {
			return storeFailure(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserListResponse(users))
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       id   path      int  true  "使用者 ID"
// @Success     200  {object}  api.UserResponse
// @Failure     400  {object}  api.ErrorResponse  "參數錯誤"
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Router      /api/users/{id} [get]
func GetUserHandler(repo store.UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgInvalidID})
		}
		user, err := repo.GetByID(c.Request().Context(), id)
		if err != nil {
			return storeFailure(c, err)
		}
		if user == nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgNotFound})
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Create a new user
// @Description 建立新使用者 (Email 會自動轉小寫)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse "Email 已存在"
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/users [post]
func CreateUserHandler(repo store.UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgInvalidBody})
		}
		req.Normalize()
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := repo.Create(c.Request().Context(), model.CreateUserParams{
			Name:  req.Name,
			Email: req.Email,
		})
		if err != nil {
			return storeFailure(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewUserResponse(user))
	}
}

// @Summary     Update a user by ID
// @Description 只更新有提供的欄位，未提供或為 null 的欄位維持原值；PUT 與 PATCH 行為相同
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "使用者 ID"
// @Param       user body     api.UpdateUserRequest true "要變更的欄位"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse "Email 已存在"
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/users/{id} [put]
// @Router      /api/users/{id} [patch]
func UpdateUserHandler(repo store.UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgInvalidID})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgInvalidBody})
		}
		req.Normalize()
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := repo.Update(c.Request().Context(), id, model.UpdateUserParams{
			Name:  req.Name,
			Email: req.Email,
		})
		if err != nil {
			return storeFailure(c, err)
		}
		if user == nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgNotFound})
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Delete a user by ID
// @Description 根據使用者 ID 刪除使用者
// @Tags        users
// @Param       id   path     int    true  "使用者 ID"
// @Success     204  "No Content"
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/users/{id} [delete]
func DeleteUserHandler(repo store.UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgInvalidID})
		}
		deleted, err := repo.Delete(c.Request().Context(), id)
		if err != nil {
			return storeFailure(c, err)
		}
		if !deleted {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgNotFound})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// parseID 只接受落在 users.id (int4) 範圍內的正整數
func parseID(c echo.Context) (int, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int(id), true
}

// storeFailure 把 repository 錯誤轉成 HTTP 回應；底層錯誤只寫入 log
func storeFailure(c echo.Context, err error) error {
	if errors.Is(err, store.ErrConflict) {
		return c.JSON(http.StatusConflict, api.ErrorResponse{Message: msgEmailTaken})
	}
	middleware.LoggerFrom(c).WithError(err).Error("user repository failure")
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgInternalFailure})
}

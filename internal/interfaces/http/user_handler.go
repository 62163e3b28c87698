package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/application/usecase"
)

// UserHandler perfil, contraseña y preferencias del usuario autenticado.
type UserHandler struct {
	users    *usecase.UserUseCase
	settings *usecase.SettingUseCase
}

// NewUserHandler construye el handler de usuario.
func NewUserHandler(users *usecase.UserUseCase, settings *usecase.SettingUseCase) *UserHandler {
	return &UserHandler{users: users, settings: settings}
}

// Me devuelve el perfil con todos los agregados derivados (stock, caja, totales).
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Profil récupéré.", user)
}

// UpdateProfile modifica los campos de perfil presentes en el payload.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if !parseBody(c, &in) {
		return nil
	}
	user, err := h.users.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Profil mis à jour.", user)
}

// UpdatePassword cambia la contraseña previa verificación de la actual.
func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.users.UpdatePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return handleError(c, err)
	}
	return ok(c, "Mot de passe mis à jour.", nil)
}

// GetSettings devuelve las preferencias, materializando los valores por defecto.
func (h *UserHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Paramètres récupérés.", settings)
}

// UpdateSettings aplica las preferencias presentes en el payload.
func (h *UserHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if !parseBody(c, &in) {
		return nil
	}
	settings, err := h.settings.Update(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Paramètres mis à jour.", settings)
}

package perfil

import (
	"net/http"

	"github.com/AmperaEnergia/api-diario/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Listar retorna todos os perfis disponíveis
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	perfis, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar perfis")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"profiles": perfis})
}

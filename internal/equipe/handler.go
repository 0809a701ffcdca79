package equipe

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

// Listar retorna todas as equipes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	equipes, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar equipes")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"teams": equipes})
}

package relatorio

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

// Listar retorna os relatórios gerados, mais recentes primeiro
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filtros{
		DataInicio: q.Get("data_inicio"),
		DataFim:    q.Get("data_fim"),
		Equipe:     q.Get("equipe"),
	}
	lista, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar relatórios")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"relatorios": lista, "total": len(lista)})
}

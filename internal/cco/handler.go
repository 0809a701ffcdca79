package cco

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AmperaEnergia/api-diario/internal/auditoria"
	"github.com/AmperaEnergia/api-diario/internal/auth"
	"github.com/AmperaEnergia/api-diario/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type criarControleRequest struct {
	CCOResponsavel string `json:"cco_responsavel"`
	Turno          string `json:"turno"`
	DataControle   string `json:"data_controle"`
	HorarioInicio  string `json:"horario_inicio"`
	HorarioFim     string `json:"horario_fim"`
	Equipe         string `json:"equipe"`
	Analise        string `json:"analise"`
	Status         string `json:"status"`
	ObservacoesCCO string `json:"observacoes_cco"`
}

type atualizarControleRequest struct {
	HorarioInicio  *string `json:"horario_inicio"`
	HorarioFim     *string `json:"horario_fim"`
	Analise        *string `json:"analise"`
	Status         *string `json:"status"`
	ObservacoesCCO *string `json:"observacoes_cco"`
}

func validarData(data string) error {
	if _, err := time.Parse("2006-01-02", data); err != nil {
		return fmt.Errorf("data inválida, use YYYY-MM-DD: %q", data)
	}
	return nil
}

// Criar registra um controle de monitoramento do CCO
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarControleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	obrigatorios := []struct {
		nome  string
		valor string
	}{
		{"cco_responsavel", req.CCOResponsavel},
		{"turno", req.Turno},
		{"data_controle", req.DataControle},
		{"equipe", req.Equipe},
	}
	for _, campo := range obrigatorios {
		if campo.valor == "" {
			utils.RespondErro(w, http.StatusBadRequest, "Campo obrigatório: "+campo.nome)
			return
		}
	}
	if err := validarData(req.DataControle); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
		return
	}

	novo := ControleCCO{
		CCOResponsavel: req.CCOResponsavel,
		Turno:          req.Turno,
		DataControle:   req.DataControle,
		HorarioInicio:  req.HorarioInicio,
		HorarioFim:     req.HorarioFim,
		Equipe:         req.Equipe,
		Analise:        req.Analise,
		Status:         req.Status,
		ObservacoesCCO: req.ObservacoesCCO,
		CreatedBy:      auth.UsuarioIDDoContexto(r.Context()),
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Salvar(tx, &novo); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, novo.CreatedBy,
			"criar_controle_cco", novo.TableName(), novo.ID, nil, novo)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao criar controle")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Controle registrado com sucesso",
		"id":      novo.ID,
		"data":    novo,
	})
}

// Listar aplica os filtros da query string
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filtros{
		DataInicio: q.Get("data_inicio"),
		DataFim:    q.Get("data_fim"),
		Equipe:     q.Get("equipe"),
		Turno:      q.Get("turno"),
	}
	lista, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar controles")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"controles": lista,
		"total":     len(lista),
	})
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "controle não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

// Atualizar edita a análise e o andamento do controle
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "controle não encontrado")
		return
	}

	var req atualizarControleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	anterior := *c
	aplicar := func(destino *string, valor *string) {
		if valor != nil {
			*destino = *valor
		}
	}
	aplicar(&c.HorarioInicio, req.HorarioInicio)
	aplicar(&c.HorarioFim, req.HorarioFim)
	aplicar(&c.Analise, req.Analise)
	aplicar(&c.Status, req.Status)
	aplicar(&c.ObservacoesCCO, req.ObservacoesCCO)

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Atualizar(tx, c); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"atualizar_controle_cco", c.TableName(), c.ID, anterior, *c)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar controle")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Controle atualizado com sucesso",
		"data":    c,
	})
}

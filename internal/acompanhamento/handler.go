package acompanhamento

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

type criarAcompanhamentoRequest struct {
	Data                  string `json:"data"`
	Turno                 string `json:"turno"`
	Supervisor            string `json:"supervisor"`
	DiarioExecucaoID      *uint  `json:"diario_execucao_id"`
	AnaliseGeral          string `json:"analise_geral"`
	PontosAtencao         string `json:"pontos_atencao"`
	ObservacoesSupervisor string `json:"observacoes_supervisor"`
	TotalEquipesAtivas    int    `json:"total_equipes_ativas"`
	TotalProtocolosDia    int    `json:"total_protocolos_dia"`
	TotalExecutados       int    `json:"total_executados"`
	TotalPendentes        int    `json:"total_pendentes"`
	TotalImpossibilidades int    `json:"total_impossibilidades"`
	AcoesCorretivas       string `json:"acoes_corretivas"`
	PrazoAcoes            string `json:"prazo_acoes"`
	ResponsavelAcoes      string `json:"responsavel_acoes"`
}

type atualizarAcompanhamentoRequest struct {
	AnaliseGeral          *string `json:"analise_geral"`
	PontosAtencao         *string `json:"pontos_atencao"`
	ObservacoesSupervisor *string `json:"observacoes_supervisor"`
	TotalEquipesAtivas    *int    `json:"total_equipes_ativas"`
	TotalProtocolosDia    *int    `json:"total_protocolos_dia"`
	TotalExecutados       *int    `json:"total_executados"`
	TotalPendentes        *int    `json:"total_pendentes"`
	TotalImpossibilidades *int    `json:"total_impossibilidades"`
	AcoesCorretivas       *string `json:"acoes_corretivas"`
	PrazoAcoes            *string `json:"prazo_acoes"`
	ResponsavelAcoes      *string `json:"responsavel_acoes"`
	Status                *string `json:"status"`
}

func validarData(data string) error {
	if _, err := time.Parse("2006-01-02", data); err != nil {
		return fmt.Errorf("data inválida, use YYYY-MM-DD: %q", data)
	}
	return nil
}

// recalcular atualiza eficiência e qualidade a partir dos contadores
func recalcular(a *DiarioAcompanhamento) {
	if a.TotalProtocolosDia <= 0 {
		return
	}
	percentual := CalcularPercentual(a.TotalExecutados, a.TotalProtocolosDia)
	a.PercentualEficiencia = &percentual
	a.QualidadeExecucao = ClassificarQualidade(percentual)
}

// Criar registra um novo acompanhamento de supervisão
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarAcompanhamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	obrigatorios := []struct {
		nome  string
		valor string
	}{
		{"data", req.Data},
		{"turno", req.Turno},
		{"supervisor", req.Supervisor},
	}
	for _, campo := range obrigatorios {
		if campo.valor == "" {
			utils.RespondErro(w, http.StatusBadRequest, "Campo obrigatório: "+campo.nome)
			return
		}
	}
	if err := validarData(req.Data); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
		return
	}

	novo := DiarioAcompanhamento{
		Data:                  req.Data,
		Turno:                 req.Turno,
		Supervisor:            req.Supervisor,
		DiarioExecucaoID:      req.DiarioExecucaoID,
		AnaliseGeral:          req.AnaliseGeral,
		PontosAtencao:         req.PontosAtencao,
		ObservacoesSupervisor: req.ObservacoesSupervisor,
		TotalEquipesAtivas:    req.TotalEquipesAtivas,
		TotalProtocolosDia:    req.TotalProtocolosDia,
		TotalExecutados:       req.TotalExecutados,
		TotalPendentes:        req.TotalPendentes,
		TotalImpossibilidades: req.TotalImpossibilidades,
		AcoesCorretivas:       req.AcoesCorretivas,
		PrazoAcoes:            req.PrazoAcoes,
		ResponsavelAcoes:      req.ResponsavelAcoes,
		Status:                StatusEmAnalise,
		CreatedBy:             auth.UsuarioIDDoContexto(r.Context()),
	}
	recalcular(&novo)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Salvar(tx, &novo); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, novo.CreatedBy,
			"criar_acompanhamento", novo.TableName(), novo.ID, nil, novo)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao criar acompanhamento")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Acompanhamento criado com sucesso",
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
		Turno:      q.Get("turno"),
		Status:     q.Get("status"),
	}
	lista, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar acompanhamentos")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"acompanhamentos": lista,
		"total":           len(lista),
	})
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "acompanhamento não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, a)
}

// Atualizar edita o parecer e pode mover o status entre
// em_analise, aprovado e rejeitado
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "acompanhamento não encontrado")
		return
	}

	var req atualizarAcompanhamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Status != nil && !StatusValido(*req.Status) {
		utils.RespondErro(w, http.StatusBadRequest, "status inválido: "+*req.Status)
		return
	}

	anterior := *a
	if req.AnaliseGeral != nil {
		a.AnaliseGeral = *req.AnaliseGeral
	}
	if req.PontosAtencao != nil {
		a.PontosAtencao = *req.PontosAtencao
	}
	if req.ObservacoesSupervisor != nil {
		a.ObservacoesSupervisor = *req.ObservacoesSupervisor
	}
	if req.TotalEquipesAtivas != nil {
		a.TotalEquipesAtivas = *req.TotalEquipesAtivas
	}
	if req.TotalProtocolosDia != nil {
		a.TotalProtocolosDia = *req.TotalProtocolosDia
	}
	if req.TotalExecutados != nil {
		a.TotalExecutados = *req.TotalExecutados
	}
	if req.TotalPendentes != nil {
		a.TotalPendentes = *req.TotalPendentes
	}
	if req.TotalImpossibilidades != nil {
		a.TotalImpossibilidades = *req.TotalImpossibilidades
	}
	if req.AcoesCorretivas != nil {
		a.AcoesCorretivas = *req.AcoesCorretivas
	}
	if req.PrazoAcoes != nil {
		a.PrazoAcoes = *req.PrazoAcoes
	}
	if req.ResponsavelAcoes != nil {
		a.ResponsavelAcoes = *req.ResponsavelAcoes
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
	recalcular(a)

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Atualizar(tx, a); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"atualizar_acompanhamento", a.TableName(), a.ID, anterior, *a)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar acompanhamento")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Acompanhamento atualizado com sucesso",
		"data":    a,
	})
}

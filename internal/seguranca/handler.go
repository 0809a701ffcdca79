package seguranca

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

type criarObservacaoRequest struct {
	ResponsavelObservacao    string `json:"responsavel_observacao"`
	Data                     string `json:"data"`
	Hora                     string `json:"hora"`
	Turno                    string `json:"turno"`
	Equipe                   string `json:"equipe"`
	Situacao                 string `json:"situacao"`
	Causa                    string `json:"causa"`
	AcaoImediata             string `json:"acao_imediata"`
	AcaoCorretiva            string `json:"acao_corretiva"`
	ResponsavelAcaoCorretiva string `json:"responsavel_acao_corretiva"`
	PrazoAcaoCorretiva       string `json:"prazo_acao_corretiva"`
}

type atualizarObservacaoRequest struct {
	Causa                    *string `json:"causa"`
	AcaoImediata             *string `json:"acao_imediata"`
	AcaoCorretiva            *string `json:"acao_corretiva"`
	ResponsavelAcaoCorretiva *string `json:"responsavel_acao_corretiva"`
	PrazoAcaoCorretiva       *string `json:"prazo_acao_corretiva"`
	Status                   *string `json:"status"`
}

func validarData(data string) error {
	if _, err := time.Parse("2006-01-02", data); err != nil {
		return fmt.Errorf("data inválida, use YYYY-MM-DD: %q", data)
	}
	return nil
}

func validarHora(hora string) error {
	if _, err := time.Parse("15:04:05", hora); err != nil {
		return fmt.Errorf("hora inválida, use HH:MM:SS: %q", hora)
	}
	return nil
}

// Criar registra uma observação de segurança com status aberta
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarObservacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	obrigatorios := []struct {
		nome  string
		valor string
	}{
		{"responsavel_observacao", req.ResponsavelObservacao},
		{"data", req.Data},
		{"hora", req.Hora},
		{"turno", req.Turno},
		{"equipe", req.Equipe},
		{"situacao", req.Situacao},
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
	if err := validarHora(req.Hora); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
		return
	}

	nova := ObservacaoSeguranca{
		ResponsavelObservacao:    req.ResponsavelObservacao,
		Data:                     req.Data,
		Hora:                     req.Hora,
		Turno:                    req.Turno,
		Equipe:                   req.Equipe,
		Situacao:                 req.Situacao,
		Causa:                    req.Causa,
		AcaoImediata:             req.AcaoImediata,
		AcaoCorretiva:            req.AcaoCorretiva,
		ResponsavelAcaoCorretiva: req.ResponsavelAcaoCorretiva,
		PrazoAcaoCorretiva:       req.PrazoAcaoCorretiva,
		Status:                   StatusAberta,
		CreatedBy:                auth.UsuarioIDDoContexto(r.Context()),
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Salvar(tx, &nova); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, nova.CreatedBy,
			"criar_observacao_seguranca", nova.TableName(), nova.ID, nil, nova)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao criar observação")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Observação registrada com sucesso",
		"id":      nova.ID,
		"data":    nova,
	})
}

// Listar aplica os filtros da query string
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filtros{
		DataInicio: q.Get("data_inicio"),
		DataFim:    q.Get("data_fim"),
		Equipe:     q.Get("equipe"),
		Status:     q.Get("status"),
	}
	lista, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar observações")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"observacoes": lista,
		"total":       len(lista),
	})
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	o, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "observação não encontrada")
		return
	}
	utils.RespondJSON(w, http.StatusOK, o)
}

// Atualizar acompanha o tratamento da observação até a conclusão
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	o, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "observação não encontrada")
		return
	}

	var req atualizarObservacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Status != nil && !StatusValido(*req.Status) {
		utils.RespondErro(w, http.StatusBadRequest, "status inválido: "+*req.Status)
		return
	}

	anterior := *o
	aplicar := func(destino *string, valor *string) {
		if valor != nil {
			*destino = *valor
		}
	}
	aplicar(&o.Causa, req.Causa)
	aplicar(&o.AcaoImediata, req.AcaoImediata)
	aplicar(&o.AcaoCorretiva, req.AcaoCorretiva)
	aplicar(&o.ResponsavelAcaoCorretiva, req.ResponsavelAcaoCorretiva)
	aplicar(&o.PrazoAcaoCorretiva, req.PrazoAcaoCorretiva)
	if req.Status != nil {
		o.Status = *req.Status
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Atualizar(tx, o); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"atualizar_observacao_seguranca", o.TableName(), o.ID, anterior, *o)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar observação")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Observação atualizada com sucesso",
		"data":    o,
	})
}

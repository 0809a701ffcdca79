package protocolo

import (
	"encoding/json"
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
	// Agora é substituível nos testes
	Agora func() time.Time
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Agora: time.Now}
}

type criarRequest struct {
	NumeroProtocolo string `json:"numero_protocolo"`
	NumeroOS        string `json:"numero_os"`
	TipoServico     string `json:"tipo_servico"`
	Endereco        string `json:"endereco"`
	Cliente         string `json:"cliente"`
	PrazoVencimento string `json:"prazo_vencimento"`
	Observacoes     string `json:"observacoes"`
}

// Criar anexa um protocolo a um diário existente
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	diarioID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	existe, err := h.Repository.DiarioExiste(h.DB, uint(diarioID))
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao consultar diário")
		return
	}
	if !existe {
		utils.RespondErro(w, http.StatusNotFound, "planejamento não encontrado")
		return
	}

	var req criarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.NumeroProtocolo == "" {
		utils.RespondErro(w, http.StatusBadRequest, "Campo obrigatório: numero_protocolo")
		return
	}
	if req.PrazoVencimento == "" {
		utils.RespondErro(w, http.StatusBadRequest, "Campo obrigatório: prazo_vencimento")
		return
	}
	prazo, err := time.Parse(time.RFC3339, req.PrazoVencimento)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "prazo_vencimento inválido, use RFC 3339")
		return
	}

	p := Protocolo{
		NumeroProtocolo: req.NumeroProtocolo,
		NumeroOS:        req.NumeroOS,
		TipoServico:     req.TipoServico,
		Endereco:        req.Endereco,
		Cliente:         req.Cliente,
		Observacoes:     req.Observacoes,
		Status:          StatusPendente,
		PrazoVencimento: prazo,
		DiarioID:        uint(diarioID),
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Salvar(tx, &p); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"criar_protocolo", p.TableName(), p.ID, nil, p)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar protocolo")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, p)
}

// ListarPorDiario retorna os protocolos de um diário
func (h *Handler) ListarPorDiario(w http.ResponseWriter, r *http.Request) {
	diarioID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	lista, err := h.Repository.ListarPorDiario(h.DB, uint(diarioID))
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar protocolos")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"protocolos": lista, "total": len(lista)})
}

// VencendoNoTurno filtra os protocolos do diário cujo prazo cai na
// janela do turno informado
func (h *Handler) VencendoNoTurno(w http.ResponseWriter, r *http.Request) {
	diarioID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	turno := r.URL.Query().Get("turno")
	if turno == "" {
		utils.RespondErro(w, http.StatusBadRequest, "Campo obrigatório: turno")
		return
	}

	lista, err := h.Repository.ListarPorDiario(h.DB, uint(diarioID))
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar protocolos")
		return
	}

	agora := h.Agora()
	vencendo := make([]Protocolo, 0)
	for _, p := range lista {
		if !p.Enviado && p.VenceNoTurno(turno, agora) {
			vencendo = append(vencendo, p)
		}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"protocolos": vencendo, "total": len(vencendo)})
}

type atualizarRequest struct {
	Status                *string `json:"status"`
	HorarioInicio         *string `json:"horario_inicio"`
	HorarioFim            *string `json:"horario_fim"`
	Observacoes           *string `json:"observacoes"`
	MotivoImpossibilidade *string `json:"motivo_impossibilidade"`
	Enviado               *bool   `json:"enviado"`
}

// Atualizar registra o desfecho de um protocolo
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "protocolo não encontrado")
		return
	}

	var req atualizarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	anterior := *p
	if req.Status != nil {
		if !StatusValido(*req.Status) {
			utils.RespondErro(w, http.StatusBadRequest, "status inválido")
			return
		}
		p.Status = *req.Status
	}
	if req.HorarioInicio != nil {
		p.HorarioInicio = *req.HorarioInicio
	}
	if req.HorarioFim != nil {
		p.HorarioFim = *req.HorarioFim
	}
	if req.Observacoes != nil {
		p.Observacoes = *req.Observacoes
	}
	if req.MotivoImpossibilidade != nil {
		p.MotivoImpossibilidade = *req.MotivoImpossibilidade
	}
	if req.Enviado != nil && *req.Enviado && !p.Enviado {
		p.Enviado = true
		agora := h.Agora()
		p.DataEnvio = &agora
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Atualizar(tx, p); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"atualizar_protocolo", p.TableName(), p.ID, anterior, *p)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar protocolo")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// Deletar remove um protocolo individual
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "protocolo não encontrado")
		return
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Deletar(tx, p.ID); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"deletar_protocolo", p.TableName(), p.ID, *p, nil)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir protocolo")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "protocolo excluído com sucesso"})
}

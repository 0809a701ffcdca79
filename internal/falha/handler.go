package falha

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

type criarReportRequest struct {
	DataOcorrencia     string   `json:"data_ocorrencia"`
	Turno              string   `json:"turno"`
	EquipeEnvolvida    string   `json:"equipe_envolvida"`
	ResponsavelReport  string   `json:"responsavel_report"`
	TipoFalha          string   `json:"tipo_falha"`
	Severidade         string   `json:"severidade"`
	Categoria          string   `json:"categoria"`
	DescricaoFalha     string   `json:"descricao_falha"`
	CausaRaiz          string   `json:"causa_raiz"`
	ImpactoOperacional string   `json:"impacto_operacional"`
	AcaoImediata       string   `json:"acao_imediata"`
	AcaoCorretiva      string   `json:"acao_corretiva"`
	AcaoPreventiva     string   `json:"acao_preventiva"`
	ResponsavelAcao    string   `json:"responsavel_acao"`
	PrazoConclusao     string   `json:"prazo_conclusao"`
	CustoEstimado      *float64 `json:"custo_estimado"`
	Evidencias         []string `json:"evidencias"`
	FotosAnexadas      bool     `json:"fotos_anexadas"`
}

type atualizarReportRequest struct {
	TipoFalha          *string  `json:"tipo_falha"`
	Severidade         *string  `json:"severidade"`
	Categoria          *string  `json:"categoria"`
	DescricaoFalha     *string  `json:"descricao_falha"`
	CausaRaiz          *string  `json:"causa_raiz"`
	ImpactoOperacional *string  `json:"impacto_operacional"`
	AcaoImediata       *string  `json:"acao_imediata"`
	AcaoCorretiva      *string  `json:"acao_corretiva"`
	AcaoPreventiva     *string  `json:"acao_preventiva"`
	ResponsavelAcao    *string  `json:"responsavel_acao"`
	PrazoConclusao     *string  `json:"prazo_conclusao"`
	DataConclusao      *string  `json:"data_conclusao"`
	Status             *string  `json:"status"`
	EficaciaAcao       *string  `json:"eficacia_acao"`
	CustoReal          *float64 `json:"custo_real"`
	Evidencias         []string `json:"evidencias"`
	FotosAnexadas      *bool    `json:"fotos_anexadas"`
}

func validarData(data string) error {
	if _, err := time.Parse("2006-01-02", data); err != nil {
		return fmt.Errorf("data inválida, use YYYY-MM-DD: %q", data)
	}
	return nil
}

// Criar abre um report de falha operacional com status aberto
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	obrigatorios := []struct {
		nome  string
		valor string
	}{
		{"data_ocorrencia", req.DataOcorrencia},
		{"turno", req.Turno},
		{"responsavel_report", req.ResponsavelReport},
		{"descricao_falha", req.DescricaoFalha},
	}
	for _, campo := range obrigatorios {
		if campo.valor == "" {
			utils.RespondErro(w, http.StatusBadRequest, "Campo obrigatório: "+campo.nome)
			return
		}
	}
	if err := validarData(req.DataOcorrencia); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Severidade != "" && !SeveridadeValida(req.Severidade) {
		utils.RespondErro(w, http.StatusBadRequest, "severidade inválida: "+req.Severidade)
		return
	}

	novo := ReportFalhaOperacional{
		DataOcorrencia:     req.DataOcorrencia,
		Turno:              req.Turno,
		EquipeEnvolvida:    req.EquipeEnvolvida,
		ResponsavelReport:  req.ResponsavelReport,
		TipoFalha:          req.TipoFalha,
		Severidade:         req.Severidade,
		Categoria:          req.Categoria,
		DescricaoFalha:     req.DescricaoFalha,
		CausaRaiz:          req.CausaRaiz,
		ImpactoOperacional: req.ImpactoOperacional,
		AcaoImediata:       req.AcaoImediata,
		AcaoCorretiva:      req.AcaoCorretiva,
		AcaoPreventiva:     req.AcaoPreventiva,
		ResponsavelAcao:    req.ResponsavelAcao,
		PrazoConclusao:     req.PrazoConclusao,
		CustoEstimado:      req.CustoEstimado,
		Evidencias:         req.Evidencias,
		FotosAnexadas:      req.FotosAnexadas,
		Status:             StatusAberto,
		CreatedBy:          auth.UsuarioIDDoContexto(r.Context()),
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Salvar(tx, &novo); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, novo.CreatedBy,
			"criar_report_falha", novo.TableName(), novo.ID, nil, novo)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao criar report")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Report criado com sucesso",
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
		Severidade: q.Get("severidade"),
		Status:     q.Get("status"),
	}
	lista, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar reports")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"reports": lista,
		"total":   len(lista),
	})
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	f, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "report não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, f)
}

// Atualizar edita o report e acompanha a falha até a conclusão. A
// aprovação fica registrada em approved_by quando o status vira
// concluído.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	f, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "report não encontrado")
		return
	}

	var req atualizarReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Status != nil && !StatusValido(*req.Status) {
		utils.RespondErro(w, http.StatusBadRequest, "status inválido: "+*req.Status)
		return
	}
	if req.Severidade != nil && !SeveridadeValida(*req.Severidade) {
		utils.RespondErro(w, http.StatusBadRequest, "severidade inválida: "+*req.Severidade)
		return
	}

	anterior := *f
	aplicar := func(destino *string, valor *string) {
		if valor != nil {
			*destino = *valor
		}
	}
	aplicar(&f.TipoFalha, req.TipoFalha)
	aplicar(&f.Severidade, req.Severidade)
	aplicar(&f.Categoria, req.Categoria)
	aplicar(&f.DescricaoFalha, req.DescricaoFalha)
	aplicar(&f.CausaRaiz, req.CausaRaiz)
	aplicar(&f.ImpactoOperacional, req.ImpactoOperacional)
	aplicar(&f.AcaoImediata, req.AcaoImediata)
	aplicar(&f.AcaoCorretiva, req.AcaoCorretiva)
	aplicar(&f.AcaoPreventiva, req.AcaoPreventiva)
	aplicar(&f.ResponsavelAcao, req.ResponsavelAcao)
	aplicar(&f.PrazoConclusao, req.PrazoConclusao)
	aplicar(&f.DataConclusao, req.DataConclusao)
	aplicar(&f.EficaciaAcao, req.EficaciaAcao)
	if req.CustoReal != nil {
		f.CustoReal = req.CustoReal
	}
	if req.Evidencias != nil {
		f.Evidencias = req.Evidencias
	}
	if req.FotosAnexadas != nil {
		f.FotosAnexadas = *req.FotosAnexadas
	}
	if req.Status != nil {
		f.Status = *req.Status
		if f.Status == StatusConcluido && f.ApprovedBy == nil {
			aprovador := auth.UsuarioIDDoContexto(r.Context())
			f.ApprovedBy = &aprovador
		}
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Atualizar(tx, f); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"atualizar_report_falha", f.TableName(), f.ID, anterior, *f)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar report")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Report atualizado com sucesso",
		"data":    f,
	})
}

// Deletar remove um report de falha
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	f, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "report não encontrado")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Deletar(tx, f.ID); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"deletar_report_falha", f.TableName(), f.ID, *f, nil)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao deletar report")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Report removido com sucesso",
	})
}

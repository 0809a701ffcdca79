package diario

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/AmperaEnergia/api-diario/internal/auditoria"
	"github.com/AmperaEnergia/api-diario/internal/auth"
	"github.com/AmperaEnergia/api-diario/internal/relatorio"
	"github.com/AmperaEnergia/api-diario/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Relatorios relatorio.Repository
	// Agora é substituível nos testes
	Agora func() time.Time
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Relatorios: relatorio.NewRepository(),
		Agora:      time.Now,
	}
}

// CriarPlanejamento abre o diário de um (data, turno, equipe)
func (h *Handler) CriarPlanejamento(w http.ResponseWriter, r *http.Request) {
	var req criarPlanejamentoRequest
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
		{"equipe", req.Equipe},
		{"colaborador1", req.Colaborador1},
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

	// Pré-checagem para devolver 409 amigável; o índice único composto
	// continua sendo a garantia contra corrida entre criações
	existe, err := h.Repository.ExistePorChave(h.DB, req.Data, req.Turno, req.Equipe)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao consultar diários")
		return
	}
	if existe {
		utils.RespondErro(w, http.StatusConflict, "Já existe um registro para esta data/turno/equipe")
		return
	}

	novo := DiarioPlanejamento{
		Data:                       req.Data,
		Turno:                      req.Turno,
		Equipe:                     req.Equipe,
		Colaborador1:               req.Colaborador1,
		Colaborador2:               req.Colaborador2,
		Veiculo:                    req.Veiculo,
		Regiao:                     req.Regiao,
		ProtocolosNaoEnviadosPrazo: req.ProtocolosNaoEnviadosPrazo,
		ProtocolosVencemNoTurno:    req.ProtocolosVencemNoTurno,
		CreatedBy:                  auth.UsuarioIDDoContexto(r.Context()),
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Salvar(tx, &novo); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, novo.CreatedBy,
			"criar_planejamento", novo.TableName(), novo.ID, nil, novo)
	})
	if err != nil {
		// corrida entre a pré-checagem e o commit: o índice único decide
		utils.RespondErro(w, http.StatusConflict, "Já existe um registro para esta data/turno/equipe")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Planejamento criado com sucesso",
		"id":      novo.ID,
		"data":    novo,
	})
}

// carregar resolve o diário do path e rejeita edição após finalização
func (h *Handler) carregar(w http.ResponseWriter, r *http.Request, bloquearFinalizado bool) *DiarioPlanejamento {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return nil
	}
	d, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "planejamento não encontrado")
		return nil
	}
	if bloquearFinalizado && d.Finalizado() {
		utils.RespondErro(w, http.StatusConflict, "planejamento já finalizado")
		return nil
	}
	return d
}

func (h *Handler) salvarComAuditoria(r *http.Request, d *DiarioPlanejamento, acao string, anterior DiarioPlanejamento) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Atualizar(tx, d); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			acao, d.TableName(), d.ID, anterior, *d)
	})
}

// AtualizarHorarios registra os horários operacionais do turno
func (h *Handler) AtualizarHorarios(w http.ResponseWriter, r *http.Request) {
	d := h.carregar(w, r, true)
	if d == nil {
		return
	}
	var req horariosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	anterior := *d
	aplicar := func(destino *string, valor *string) {
		if valor != nil {
			*destino = *valor
		}
	}
	aplicar(&d.HorarioSaidaBase, req.HorarioSaidaBase)
	aplicar(&d.HorarioPrimeiroAtendimento, req.HorarioPrimeiroAtendimento)
	aplicar(&d.HorarioInicioIntervalo, req.HorarioInicioIntervalo)
	aplicar(&d.HorarioFimIntervalo, req.HorarioFimIntervalo)
	aplicar(&d.HorarioUltimoAtendimento, req.HorarioUltimoAtendimento)
	aplicar(&d.HorarioChegadaBase, req.HorarioChegadaBase)

	if err := validarOrdemHorarios(d); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.salvarComAuditoria(r, d, "atualizar_horarios", anterior); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar horários")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Horários atualizados com sucesso",
		"data":    d,
	})
}

// AtualizarTriagem grava os contadores e recalcula o status de triagem
func (h *Handler) AtualizarTriagem(w http.ResponseWriter, r *http.Request) {
	d := h.carregar(w, r, true)
	if d == nil {
		return
	}
	var req triagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	anterior := *d
	if req.ProtocolosPrazo != nil {
		d.ProtocolosPrazo = req.ProtocolosPrazo
	}
	if req.ProtocolosVencidos != nil {
		d.ProtocolosVencidos = req.ProtocolosVencidos
	}
	if req.TotalProtocolos != nil {
		d.TotalProtocolos = req.TotalProtocolos
	}
	if req.ProtocolosNaoEnviadosPrazo != nil {
		d.ProtocolosNaoEnviadosPrazo = *req.ProtocolosNaoEnviadosPrazo
	}
	if req.ProtocolosVencemNoTurno != nil {
		d.ProtocolosVencemNoTurno = *req.ProtocolosVencemNoTurno
	}
	if req.ComentarioTriagem != nil {
		d.ComentarioTriagem = *req.ComentarioTriagem
	}

	// Sem total não há divisão: o status permanece como estava
	if d.TotalProtocolos != nil && *d.TotalProtocolos > 0 && d.ProtocolosVencidos != nil {
		d.StatusTriagem = StatusTriagem(*d.ProtocolosVencidos, *d.TotalProtocolos)
	}

	if err := h.salvarComAuditoria(r, d, "atualizar_triagem", anterior); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar triagem")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Triagem atualizada com sucesso",
		"data":    d,
	})
}

// AtualizarExecucao grava os contadores de execução e recalcula a
// eficiência e sua classificação
func (h *Handler) AtualizarExecucao(w http.ResponseWriter, r *http.Request) {
	d := h.carregar(w, r, true)
	if d == nil {
		return
	}
	var req execucaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	anterior := *d
	if req.Atendido != nil {
		d.Atendido = req.Atendido
	}
	if req.Impossibilidade != nil {
		d.Impossibilidade = req.Impossibilidade
	}
	if req.NaoExecutado != nil {
		d.NaoExecutado = req.NaoExecutado
	}
	if req.ComentarioExecucao != nil {
		d.ComentarioExecucao = *req.ComentarioExecucao
	}

	// total = atendido + impossibilidade + não executado, quando todos
	// os contadores estão presentes
	if d.TotalProtocolos != nil && d.Atendido != nil && d.Impossibilidade != nil && d.NaoExecutado != nil {
		if *d.TotalProtocolos != *d.Atendido+*d.Impossibilidade+*d.NaoExecutado {
			utils.RespondErro(w, http.StatusBadRequest,
				"total_protocolos deve ser a soma de atendido, impossibilidade e nao_executado")
			return
		}
	}

	// Com total zero a eficiência fica indefinida
	if d.TotalProtocolos != nil && *d.TotalProtocolos > 0 && d.Atendido != nil {
		eficiencia := CalcularEficiencia(*d.Atendido, *d.TotalProtocolos)
		d.Eficiencia = &eficiencia
		d.Classificacao = ClassificarEficiencia(eficiencia)
	}

	if err := h.salvarComAuditoria(r, d, "atualizar_execucao", anterior); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar execução")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Execução atualizada com sucesso",
		"data":    d,
	})
}

// AtualizarSupervisao registra o parecer do supervisor e avança o
// status final para supervisionado
func (h *Handler) AtualizarSupervisao(w http.ResponseWriter, r *http.Request) {
	d := h.carregar(w, r, true)
	if d == nil {
		return
	}
	var req supervisaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	anterior := *d
	d.ComentarioSupervisor = req.ComentarioSupervisor
	if req.SentimentoSupervisao != "" {
		d.SentimentoSupervisao = req.SentimentoSupervisao
	} else {
		d.SentimentoSupervisao = "neutro"
	}
	if req.PontosAtencao != nil {
		d.PontosAtencao = *req.PontosAtencao
	} else {
		d.PontosAtencao = false
	}
	d.StatusFinal = StatusSupervisionado

	if err := h.salvarComAuditoria(r, d, "atualizar_supervisao", anterior); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar supervisão")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Supervisão atualizada com sucesso",
		"data":    d,
	})
}

// GerarRelatorio congela um snapshot do diário e o finaliza. Snapshot e
// transição de status entram na mesma transação.
func (h *Handler) GerarRelatorio(w http.ResponseWriter, r *http.Request) {
	d := h.carregar(w, r, true)
	if d == nil {
		return
	}

	snapshot := h.montarSnapshot(d)
	registro := relatorio.RelatorioDiario{
		Data:      d.Data,
		Turno:     d.Turno,
		Equipe:    d.Equipe,
		Relatorio: snapshot,
	}

	anterior := *d
	d.StatusFinal = StatusFinalizado
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Relatorios.Salvar(tx, &registro); err != nil {
			return err
		}
		if err := h.Repository.Atualizar(tx, d); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"gerar_relatorio", registro.TableName(), registro.ID, anterior, *d)
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao gerar relatório")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Relatório gerado com sucesso",
		"relatorio": snapshot,
	})
}

func (h *Handler) montarSnapshot(d *DiarioPlanejamento) relatorio.Snapshot {
	valor := func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	}
	return relatorio.Snapshot{
		Cabecalho: relatorio.Cabecalho{
			Data:          d.Data,
			Turno:         d.Turno,
			Equipe:        d.Equipe,
			Colaboradores: []string{d.Colaborador1, d.Colaborador2},
			Veiculo:       d.Veiculo,
			Regiao:        d.Regiao,
		},
		Protocolos: relatorio.ResumoProtocolos{
			NoPrazo:  valor(d.ProtocolosPrazo),
			Vencidos: valor(d.ProtocolosVencidos),
			Total:    valor(d.TotalProtocolos),
		},
		Execucao: relatorio.ResumoExecucao{
			Atendido:        valor(d.Atendido),
			Impossibilidade: valor(d.Impossibilidade),
			NaoExecutado:    valor(d.NaoExecutado),
		},
		Comentarios: relatorio.Comentarios{
			Triagem:    d.ComentarioTriagem,
			Execucao:   d.ComentarioExecucao,
			Supervisor: d.ComentarioSupervisor,
		},
		Metricas: relatorio.Metricas{
			Eficiencia:    valor(d.Eficiencia),
			Classificacao: d.Classificacao,
			StatusTriagem: d.StatusTriagem,
		},
		GeradoEm: h.Agora().UTC().Format(time.RFC3339),
	}
}

// Listar aplica os filtros conjuntivos da query string
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filtros{
		DataInicio: q.Get("data_inicio"),
		DataFim:    q.Get("data_fim"),
		Equipe:     q.Get("equipe"),
		Turno:      q.Get("turno"),
	}
	for _, data := range []string{f.DataInicio, f.DataFim} {
		if data != "" {
			if err := validarData(data); err != nil {
				utils.RespondErro(w, http.StatusBadRequest, err.Error())
				return
			}
		}
	}

	lista, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar planejamentos")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"planejamentos": lista,
		"total":         len(lista),
	})
}

// BuscarPorID retorna um planejamento específico
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	d := h.carregar(w, r, false)
	if d == nil {
		return
	}
	utils.RespondJSON(w, http.StatusOK, d)
}

// Dashboard agrega as estatísticas gerais e os cinco diários mais
// recentes
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	hoje := h.Agora().Format("2006-01-02")
	est, err := h.Repository.Estatisticas(h.DB, hoje)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao montar estatísticas")
		return
	}
	est.EficienciaMedia = math.Round(est.EficienciaMedia*100) / 100

	recentes, err := h.Repository.Recentes(h.DB, 5)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar recentes")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"estatisticas":           est,
		"planejamentos_recentes": recentes,
	})
}

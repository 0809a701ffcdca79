package main

import (
	"net/http"
	"os"
	"time"

	"github.com/AmperaEnergia/api-diario/internal/acompanhamento"
	"github.com/AmperaEnergia/api-diario/internal/auditoria"
	"github.com/AmperaEnergia/api-diario/internal/auth"
	"github.com/AmperaEnergia/api-diario/internal/cco"
	"github.com/AmperaEnergia/api-diario/internal/diario"
	"github.com/AmperaEnergia/api-diario/internal/equipe"
	"github.com/AmperaEnergia/api-diario/internal/falha"
	"github.com/AmperaEnergia/api-diario/internal/perfil"
	"github.com/AmperaEnergia/api-diario/internal/protocolo"
	"github.com/AmperaEnergia/api-diario/internal/relatorio"
	"github.com/AmperaEnergia/api-diario/internal/seguranca"
	"github.com/AmperaEnergia/api-diario/internal/usuario"
	"github.com/AmperaEnergia/api-diario/internal/utils"
	utilsdb "github.com/AmperaEnergia/api-diario/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	godotenv.Load()
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	db, err := utilsdb.GetDB()
	if err != nil {
		log.Fatal().Err(err).Msg("erro ao conectar no banco")
	}

	if err := db.AutoMigrate(
		&perfil.Perfil{},
		&equipe.Equipe{},
		&usuario.Usuario{},
		&diario.DiarioPlanejamento{},
		&protocolo.Protocolo{},
		&acompanhamento.DiarioAcompanhamento{},
		&falha.ReportFalhaOperacional{},
		&seguranca.ObservacaoSeguranca{},
		&cco.ControleCCO{},
		&relatorio.RelatorioDiario{},
		&auditoria.LogSistema{},
	); err != nil {
		log.Fatal().Err(err).Msg("erro no AutoMigrate")
	}

	if err := seedPerfis(db); err != nil {
		log.Fatal().Err(err).Msg("erro ao semear perfis")
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(db)
	perfilHandler := perfil.NewHandler(db)
	equipeHandler := equipe.NewHandler(db)
	diarioHandler := diario.NewHandler(db)
	protocoloHandler := protocolo.NewHandler(db)
	acompanhamentoHandler := acompanhamento.NewHandler(db)
	falhaHandler := falha.NewHandler(db)
	segurancaHandler := seguranca.NewHandler(db)
	ccoHandler := cco.NewHandler(db)
	relatorioHandler := relatorio.NewHandler(db)

	usuarioRepo := usuario.NewRepository()
	mw := auth.NewMiddleware(func(id uint) error {
		return usuarioRepo.VerificarAtivo(db, id)
	})

	// Router
	r := mux.NewRouter()
	r.Use(logRequisicoes)

	// Rotas públicas
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(mw.Autenticar)

	api.HandleFunc("/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/profiles", perfilHandler.Listar).Methods("GET")
	api.HandleFunc("/teams", equipeHandler.Listar).Methods("GET")

	// Gestão de usuários
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.ExigirPermissao(auth.PermGerenciarUsuarios))
	admin.HandleFunc("/usuarios", usuarioHandler.Registrar).Methods("POST")
	admin.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.Desativar).Methods("DELETE")

	// Leitura de diários
	leitura := api.NewRoute().Subrouter()
	leitura.Use(auth.ExigirPermissao(auth.PermVisualizarDiarios))
	leitura.HandleFunc("/planejamentos", diarioHandler.Listar).Methods("GET")
	leitura.HandleFunc("/planejamento/{id}", diarioHandler.BuscarPorID).Methods("GET")
	leitura.HandleFunc("/planejamento/{id}/protocolos", protocoloHandler.ListarPorDiario).Methods("GET")
	leitura.HandleFunc("/planejamento/{id}/protocolos/vencendo", protocoloHandler.VencendoNoTurno).Methods("GET")

	// Edição do ciclo do diário
	edicao := api.NewRoute().Subrouter()
	edicao.Use(auth.ExigirPermissao(auth.PermEditarDiario))
	edicao.HandleFunc("/planejamento", diarioHandler.CriarPlanejamento).Methods("POST")
	edicao.HandleFunc("/horarios/{id}", diarioHandler.AtualizarHorarios).Methods("PUT")
	edicao.HandleFunc("/triagem/{id}", diarioHandler.AtualizarTriagem).Methods("PUT")
	edicao.HandleFunc("/execucao/{id}", diarioHandler.AtualizarExecucao).Methods("PUT")
	edicao.HandleFunc("/planejamento/{id}/protocolos", protocoloHandler.Criar).Methods("POST")
	edicao.HandleFunc("/protocolos/{id}", protocoloHandler.Atualizar).Methods("PUT")
	edicao.HandleFunc("/protocolos/{id}", protocoloHandler.Deletar).Methods("DELETE")

	// Supervisão e acompanhamento
	supervisao := api.NewRoute().Subrouter()
	supervisao.Use(auth.ExigirPermissao(auth.PermAprovarDiarios))
	supervisao.HandleFunc("/supervisao/{id}", diarioHandler.AtualizarSupervisao).Methods("PUT")
	supervisao.HandleFunc("/acompanhamentos", acompanhamentoHandler.Criar).Methods("POST")
	supervisao.HandleFunc("/acompanhamentos", acompanhamentoHandler.Listar).Methods("GET")
	supervisao.HandleFunc("/acompanhamentos/{id}", acompanhamentoHandler.BuscarPorID).Methods("GET")
	supervisao.HandleFunc("/acompanhamentos/{id}", acompanhamentoHandler.Atualizar).Methods("PUT")

	// Relatórios
	relatorios := api.NewRoute().Subrouter()
	relatorios.Use(auth.ExigirPermissao(auth.PermGerarRelatorios))
	relatorios.HandleFunc("/relatorio/{id}", diarioHandler.GerarRelatorio).Methods("POST")
	relatorios.HandleFunc("/relatorios", relatorioHandler.Listar).Methods("GET")

	// Dashboard
	dashboards := api.NewRoute().Subrouter()
	dashboards.Use(auth.ExigirPermissao(auth.PermVisualizarDashboards))
	dashboards.HandleFunc("/dashboard", diarioHandler.Dashboard).Methods("GET")

	// Reports de falha e observações de segurança
	reports := api.NewRoute().Subrouter()
	reports.Use(auth.ExigirPermissao(auth.PermCriarReportFalhas))
	reports.HandleFunc("/reports-falhas", falhaHandler.Criar).Methods("POST")
	reports.HandleFunc("/reports-falhas", falhaHandler.Listar).Methods("GET")
	reports.HandleFunc("/reports-falhas/{id}", falhaHandler.BuscarPorID).Methods("GET")
	reports.HandleFunc("/reports-falhas/{id}", falhaHandler.Atualizar).Methods("PUT")
	reports.HandleFunc("/reports-falhas/{id}", falhaHandler.Deletar).Methods("DELETE")
	reports.HandleFunc("/observacoes-seguranca", segurancaHandler.Criar).Methods("POST")
	reports.HandleFunc("/observacoes-seguranca", segurancaHandler.Listar).Methods("GET")
	reports.HandleFunc("/observacoes-seguranca/{id}", segurancaHandler.BuscarPorID).Methods("GET")
	reports.HandleFunc("/observacoes-seguranca/{id}", segurancaHandler.Atualizar).Methods("PUT")

	// Controle do CCO
	controle := api.NewRoute().Subrouter()
	controle.Use(auth.ExigirPermissao(auth.PermControleCCO))
	controle.HandleFunc("/controles-cco", ccoHandler.Criar).Methods("POST")
	controle.HandleFunc("/controles-cco", ccoHandler.Listar).Methods("GET")
	controle.HandleFunc("/controles-cco/{id}", ccoHandler.BuscarPorID).Methods("GET")
	controle.HandleFunc("/controles-cco/{id}", ccoHandler.Atualizar).Methods("PUT")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}
	log.Info().Str("porta", porta).Msg("servidor iniciado")
	if err := http.ListenAndServe(":"+porta, c.Handler(r)); err != nil {
		log.Fatal().Err(err).Msg("servidor encerrado")
	}
}

// seedPerfis garante os quatro perfis padrão na primeira subida
func seedPerfis(db *gorm.DB) error {
	padrao := []perfil.Perfil{
		{Nome: auth.PerfilAdministrador, Descricao: "Acesso total ao sistema",
			Permissoes: []string{"todas"}},
		{Nome: auth.PerfilSupervisor, Descricao: "Supervisão das equipes de campo",
			Permissoes: []string{"editar_diario", "visualizar_diarios", "aprovar_diarios", "gerar_relatorios", "visualizar_dashboards", "criar_report_falhas"}},
		{Nome: auth.PerfilCCO, Descricao: "Centro de controle operacional",
			Permissoes: []string{"visualizar_diarios", "gerar_relatorios", "visualizar_dashboards", "criar_report_falhas", "controle_cco"}},
		{Nome: auth.PerfilCampo, Descricao: "Execução em campo",
			Permissoes: []string{"editar_diario", "visualizar_diarios"}},
	}
	for _, p := range padrao {
		var total int64
		if err := db.Model(&perfil.Perfil{}).Where("nome = ?", p.Nome).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			if err := db.Create(&p).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// logRequisicoes registra método, rota, status e duração de cada request
func logRequisicoes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Info().
			Str("metodo", r.Method).
			Str("rota", r.URL.Path).
			Int("status", sw.status).
			Dur("duracao", time.Since(inicio)).
			Msg("request")
	})
}

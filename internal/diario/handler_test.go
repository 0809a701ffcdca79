package diario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AmperaEnergia/api-diario/internal/auditoria"
	"github.com/AmperaEnergia/api-diario/internal/protocolo"
	"github.com/AmperaEnergia/api-diario/internal/relatorio"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func novoAmbiente(t *testing.T) (*Handler, *mux.Router, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&DiarioPlanejamento{},
		&protocolo.Protocolo{},
		&relatorio.RelatorioDiario{},
		&auditoria.LogSistema{},
	))

	h := NewHandler(db)
	r := mux.NewRouter()
	r.HandleFunc("/planejamento", h.CriarPlanejamento).Methods("POST")
	r.HandleFunc("/horarios/{id}", h.AtualizarHorarios).Methods("PUT")
	r.HandleFunc("/triagem/{id}", h.AtualizarTriagem).Methods("PUT")
	r.HandleFunc("/execucao/{id}", h.AtualizarExecucao).Methods("PUT")
	r.HandleFunc("/supervisao/{id}", h.AtualizarSupervisao).Methods("PUT")
	r.HandleFunc("/relatorio/{id}", h.GerarRelatorio).Methods("POST")
	r.HandleFunc("/planejamentos", h.Listar).Methods("GET")
	r.HandleFunc("/planejamento/{id}", h.BuscarPorID).Methods("GET")
	r.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	return h, r, db
}

func fazer(t *testing.T, r *mux.Router, metodo, caminho string, corpo interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var leitor *bytes.Reader
	if corpo != nil {
		b, err := json.Marshal(corpo)
		require.NoError(t, err)
		leitor = bytes.NewReader(b)
	} else {
		leitor = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(metodo, caminho, leitor)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func corpoJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func criarDiario(t *testing.T, r *mux.Router, data, turno, equipe string) uint {
	t.Helper()
	rec := fazer(t, r, "POST", "/planejamento", map[string]interface{}{
		"data":         data,
		"turno":        turno,
		"equipe":       equipe,
		"colaborador1": "João Silva",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint(corpoJSON(t, rec)["id"].(float64))
}

func TestCriarPlanejamentoDuplicado(t *testing.T) {
	_, r, _ := novoAmbiente(t)

	criarDiario(t, r, "2025-03-10", "M1", "Equipe 18")

	// a mesma tripla só entra uma vez
	rec := fazer(t, r, "POST", "/planejamento", map[string]interface{}{
		"data":         "2025-03-10",
		"turno":        "M1",
		"equipe":       "Equipe 18",
		"colaborador1": "Maria Souza",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, corpoJSON(t, rec)["erro"], "Já existe um registro")

	// outra tripla passa
	rec = fazer(t, r, "POST", "/planejamento", map[string]interface{}{
		"data":         "2025-03-10",
		"turno":        "T2",
		"equipe":       "Equipe 18",
		"colaborador1": "Maria Souza",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCriarPlanejamentoCamposObrigatorios(t *testing.T) {
	_, r, _ := novoAmbiente(t)

	rec := fazer(t, r, "POST", "/planejamento", map[string]interface{}{
		"data":  "2025-03-10",
		"turno": "M1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, corpoJSON(t, rec)["erro"], "Campo obrigatório: equipe")

	rec = fazer(t, r, "POST", "/planejamento", map[string]interface{}{
		"data":         "10/03/2025",
		"turno":        "M1",
		"equipe":       "Equipe 18",
		"colaborador1": "João Silva",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAtualizarTriagem(t *testing.T) {
	_, r, _ := novoAmbiente(t)
	id := criarDiario(t, r, "2025-03-10", "M1", "Equipe 18")

	rec := fazer(t, r, "PUT", fmt.Sprintf("/triagem/%d", id), map[string]interface{}{
		"protocolos_prazo":    65,
		"protocolos_vencidos": 35,
		"total_protocolos":    100,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dados := corpoJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, TriagemCritico, dados["status_triagem"])

	// 30% exato fica em atenção
	rec = fazer(t, r, "PUT", fmt.Sprintf("/triagem/%d", id), map[string]interface{}{
		"protocolos_vencidos": 30,
		"total_protocolos":    100,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	dados = corpoJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, TriagemAtencao, dados["status_triagem"])

	// total zero não divide e preserva o status anterior
	rec = fazer(t, r, "PUT", fmt.Sprintf("/triagem/%d", id), map[string]interface{}{
		"total_protocolos": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	dados = corpoJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, TriagemAtencao, dados["status_triagem"])
}

func TestAtualizarExecucaoFaixas(t *testing.T) {
	_, r, _ := novoAmbiente(t)

	casos := []struct {
		atendido        int
		impossibilidade int
		naoExecutado    int
		eficiencia      float64
		classificacao   string
	}{
		{96, 2, 2, 96, "excelente"},
		{84, 10, 6, 84, "bom"},
		{72, 20, 8, 72, "regular"},
		{50, 30, 20, 50, "ruim"},
	}

	for i, caso := range casos {
		id := criarDiario(t, r, fmt.Sprintf("2025-03-%02d", i+1), "M1", "Equipe 18")
		rec := fazer(t, r, "PUT", fmt.Sprintf("/triagem/%d", id), map[string]interface{}{
			"total_protocolos": 100,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = fazer(t, r, "PUT", fmt.Sprintf("/execucao/%d", id), map[string]interface{}{
			"atendido":        caso.atendido,
			"impossibilidade": caso.impossibilidade,
			"nao_executado":   caso.naoExecutado,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		dados := corpoJSON(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, caso.eficiencia, dados["eficiencia"])
		assert.Equal(t, caso.classificacao, dados["classificacao"])
	}
}

func TestAtualizarExecucaoInvariante(t *testing.T) {
	_, r, _ := novoAmbiente(t)
	id := criarDiario(t, r, "2025-03-10", "M1", "Equipe 18")

	rec := fazer(t, r, "PUT", fmt.Sprintf("/triagem/%d", id), map[string]interface{}{
		"total_protocolos": 100,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// 96 + 2 + 3 != 100
	rec = fazer(t, r, "PUT", fmt.Sprintf("/execucao/%d", id), map[string]interface{}{
		"atendido":        96,
		"impossibilidade": 2,
		"nao_executado":   3,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAtualizarExecucaoTotalZero(t *testing.T) {
	_, r, _ := novoAmbiente(t)
	id := criarDiario(t, r, "2025-03-10", "M1", "Equipe 18")

	rec := fazer(t, r, "PUT", fmt.Sprintf("/triagem/%d", id), map[string]interface{}{
		"total_protocolos": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = fazer(t, r, "PUT", fmt.Sprintf("/execucao/%d", id), map[string]interface{}{
		"atendido": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	dados := corpoJSON(t, rec)["data"].(map[string]interface{})
	assert.Nil(t, dados["eficiencia"])
	assert.Equal(t, "", dados["classificacao"])
}

func TestAtualizarSupervisaoDefaults(t *testing.T) {
	_, r, _ := novoAmbiente(t)
	id := criarDiario(t, r, "2025-03-10", "M1", "Equipe 18")

	rec := fazer(t, r, "PUT", fmt.Sprintf("/supervisao/%d", id), map[string]interface{}{
		"comentario_supervisor": "Equipe dentro do esperado",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	dados := corpoJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "neutro", dados["sentimento_supervisao"])
	assert.Equal(t, false, dados["pontos_atencao"])
	assert.Equal(t, StatusSupervisionado, dados["status_final"])
}

func TestGerarRelatorioRoundTrip(t *testing.T) {
	h, r, db := novoAmbiente(t)
	h.Agora = func() time.Time {
		return time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	}
	id := criarDiario(t, r, "2025-03-10", "M1", "Equipe 18")

	rec := fazer(t, r, "PUT", fmt.Sprintf("/triagem/%d", id), map[string]interface{}{
		"protocolos_prazo":    90,
		"protocolos_vencidos": 10,
		"total_protocolos":    100,
		"comentario_triagem":  "triagem ok",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = fazer(t, r, "PUT", fmt.Sprintf("/execucao/%d", id), map[string]interface{}{
		"atendido":            96,
		"impossibilidade":     2,
		"nao_executado":       2,
		"comentario_execucao": "execução ok",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = fazer(t, r, "PUT", fmt.Sprintf("/supervisao/%d", id), map[string]interface{}{
		"comentario_supervisor": "supervisão ok",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = fazer(t, r, "POST", fmt.Sprintf("/relatorio/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// o snapshot devolvido reproduz o estado do diário
	var resposta struct {
		Relatorio relatorio.Snapshot `json:"relatorio"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
	snap := resposta.Relatorio
	assert.Equal(t, "2025-03-10", snap.Cabecalho.Data)
	assert.Equal(t, "M1", snap.Cabecalho.Turno)
	assert.Equal(t, "Equipe 18", snap.Cabecalho.Equipe)
	assert.Equal(t, []string{"João Silva", ""}, snap.Cabecalho.Colaboradores)
	assert.Equal(t, 90, snap.Protocolos.NoPrazo)
	assert.Equal(t, 10, snap.Protocolos.Vencidos)
	assert.Equal(t, 100, snap.Protocolos.Total)
	assert.Equal(t, 96, snap.Execucao.Atendido)
	assert.Equal(t, "triagem ok", snap.Comentarios.Triagem)
	assert.Equal(t, "execução ok", snap.Comentarios.Execucao)
	assert.Equal(t, "supervisão ok", snap.Comentarios.Supervisor)
	assert.Equal(t, 96, snap.Metricas.Eficiencia)
	assert.Equal(t, "excelente", snap.Metricas.Classificacao)
	assert.Equal(t, TriagemNormal, snap.Metricas.StatusTriagem)
	assert.Equal(t, "2025-03-10T18:00:00Z", snap.GeradoEm)

	// snapshot persistido e chave única
	var rel relatorio.RelatorioDiario
	require.NoError(t, db.Where("data = ? AND turno = ? AND equipe = ?",
		"2025-03-10", "M1", "Equipe 18").First(&rel).Error)
	assert.Equal(t, snap, rel.Relatorio)

	// o diário passa ao estado terminal
	var d DiarioPlanejamento
	require.NoError(t, db.First(&d, id).Error)
	assert.Equal(t, StatusFinalizado, d.StatusFinal)

	// depois de finalizado nada mais é editável
	rec = fazer(t, r, "PUT", fmt.Sprintf("/triagem/%d", id), map[string]interface{}{
		"total_protocolos": 50,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = fazer(t, r, "POST", fmt.Sprintf("/relatorio/%d", id), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListarFiltrosConjuntivos(t *testing.T) {
	_, r, _ := novoAmbiente(t)

	criarDiario(t, r, "2025-03-08", "M1", "Man-IP-01 | ENGIE")
	criarDiario(t, r, "2025-03-09", "T2", "Man-IP-01 | ENGIE")
	criarDiario(t, r, "2025-03-10", "M1", "Man-IP-02 | ENGIE")
	criarDiario(t, r, "2025-03-11", "M1", "Man-IP-01 | ENGIE")
	criarDiario(t, r, "2025-03-12", "M1", "Equipe 18")

	// data range + equipe (substring, sem caixa) + turno, tudo junto
	rec := fazer(t, r, "GET",
		"/planejamentos?data_inicio=2025-03-09&data_fim=2025-03-11&equipe=man-ip&turno=M1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	corpo := corpoJSON(t, rec)
	assert.Equal(t, float64(2), corpo["total"])

	lista := corpo["planejamentos"].([]interface{})
	require.Len(t, lista, 2)
	// ordenado por data decrescente
	assert.Equal(t, "2025-03-11", lista[0].(map[string]interface{})["data"])
	assert.Equal(t, "2025-03-10", lista[1].(map[string]interface{})["data"])
}

func TestBuscarPorIDInexistente(t *testing.T) {
	_, r, _ := novoAmbiente(t)
	rec := fazer(t, r, "GET", "/planejamento/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboard(t *testing.T) {
	h, r, _ := novoAmbiente(t)
	h.Agora = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}

	// diário de hoje com protocolos vencendo no turno
	rec := fazer(t, r, "POST", "/planejamento", map[string]interface{}{
		"data":                          "2025-03-10",
		"turno":                         "M1",
		"equipe":                        "Equipe 18",
		"colaborador1":                  "João Silva",
		"protocolos_nao_enviados_prazo": 3,
		"protocolos_vencem_no_turno":    4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	hoje := uint(corpoJSON(t, rec)["id"].(float64))

	// diário antigo: entra na soma de não enviados, fora da de hoje
	rec = fazer(t, r, "POST", "/planejamento", map[string]interface{}{
		"data":                          "2025-03-01",
		"turno":                         "M1",
		"equipe":                        "Equipe 19",
		"colaborador1":                  "Maria Souza",
		"protocolos_nao_enviados_prazo": 2,
		"protocolos_vencem_no_turno":    9,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// fecha o diário de hoje com eficiência 96
	rec = fazer(t, r, "PUT", fmt.Sprintf("/triagem/%d", hoje), map[string]interface{}{
		"total_protocolos": 100,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = fazer(t, r, "PUT", fmt.Sprintf("/execucao/%d", hoje), map[string]interface{}{
		"atendido": 96,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = fazer(t, r, "POST", fmt.Sprintf("/relatorio/%d", hoje), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = fazer(t, r, "GET", "/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	corpo := corpoJSON(t, rec)
	est := corpo["estatisticas"].(map[string]interface{})

	assert.Equal(t, float64(2), est["total_planejamentos"])
	assert.Equal(t, float64(1), est["planejamentos_finalizados"])
	assert.Equal(t, float64(96), est["eficiencia_media"])
	assert.Equal(t, float64(5), est["total_protocolos_nao_enviados"])
	assert.Equal(t, float64(4), est["total_protocolos_vencem_hoje"])

	status := est["status_counts"].(map[string]interface{})
	assert.Equal(t, float64(1), status[StatusFinalizado])
	assert.Equal(t, float64(1), status[""])

	recentes := corpo["planejamentos_recentes"].([]interface{})
	assert.Len(t, recentes, 2)
}

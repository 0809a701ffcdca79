package acompanhamento

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AmperaEnergia/api-diario/internal/auditoria"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func novoAmbiente(t *testing.T) *mux.Router {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&DiarioAcompanhamento{}, &auditoria.LogSistema{}))

	h := NewHandler(db)
	r := mux.NewRouter()
	r.HandleFunc("/acompanhamentos", h.Criar).Methods("POST")
	r.HandleFunc("/acompanhamentos", h.Listar).Methods("GET")
	r.HandleFunc("/acompanhamentos/{id}", h.BuscarPorID).Methods("GET")
	r.HandleFunc("/acompanhamentos/{id}", h.Atualizar).Methods("PUT")
	return r
}

func fazer(t *testing.T, r *mux.Router, metodo, caminho string, corpo interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(corpo)
	require.NoError(t, err)
	req := httptest.NewRequest(metodo, caminho, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestClassificarQualidade(t *testing.T) {
	assert.Equal(t, "Excelente", ClassificarQualidade(95))
	assert.Equal(t, "Boa", ClassificarQualidade(84.4))
	assert.Equal(t, "Boa", ClassificarQualidade(80))
	assert.Equal(t, "Regular", ClassificarQualidade(79.9))
	assert.Equal(t, "Regular", ClassificarQualidade(60))
	assert.Equal(t, "Ruim", ClassificarQualidade(59.9))
}

func TestCriarAcompanhamentoCalculaEficiencia(t *testing.T) {
	r := novoAmbiente(t)

	rec := fazer(t, r, "POST", "/acompanhamentos", map[string]interface{}{
		"data":                 "2025-03-10",
		"turno":                "M1",
		"supervisor":           "Débora Santos",
		"total_protocolos_dia": 45,
		"total_executados":     38,
		"total_pendentes":      5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resposta map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
	dados := resposta["data"].(map[string]interface{})
	assert.Equal(t, 84.4, dados["percentual_eficiencia"])
	assert.Equal(t, "Boa", dados["qualidade_execucao"])
	assert.Equal(t, StatusEmAnalise, dados["status"])
}

func TestCriarAcompanhamentoSemTotal(t *testing.T) {
	r := novoAmbiente(t)

	rec := fazer(t, r, "POST", "/acompanhamentos", map[string]interface{}{
		"data":       "2025-03-10",
		"turno":      "M1",
		"supervisor": "Débora Santos",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resposta map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
	dados := resposta["data"].(map[string]interface{})
	assert.Nil(t, dados["percentual_eficiencia"])
	assert.Equal(t, "", dados["qualidade_execucao"])
}

func TestAtualizarAcompanhamentoStatus(t *testing.T) {
	r := novoAmbiente(t)

	rec := fazer(t, r, "POST", "/acompanhamentos", map[string]interface{}{
		"data":       "2025-03-10",
		"turno":      "M1",
		"supervisor": "Débora Santos",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resposta map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
	id := int(resposta["id"].(float64))

	rec = fazer(t, r, "PUT", fmt.Sprintf("/acompanhamentos/%d", id), map[string]interface{}{
		"status": "aprovadíssimo",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = fazer(t, r, "PUT", fmt.Sprintf("/acompanhamentos/%d", id), map[string]interface{}{
		"status":        StatusAprovado,
		"analise_geral": "Conforme",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
	dados := resposta["data"].(map[string]interface{})
	assert.Equal(t, StatusAprovado, dados["status"])
	assert.Equal(t, "Conforme", dados["analise_geral"])
}

func TestListarAcompanhamentosPorStatus(t *testing.T) {
	r := novoAmbiente(t)

	for i, status := range []string{StatusAprovado, StatusEmAnalise} {
		rec := fazer(t, r, "POST", "/acompanhamentos", map[string]interface{}{
			"data":       fmt.Sprintf("2025-03-%02d", i+1),
			"turno":      "M1",
			"supervisor": "Débora Santos",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var resposta map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
		id := int(resposta["id"].(float64))
		rec = fazer(t, r, "PUT", fmt.Sprintf("/acompanhamentos/%d", id), map[string]interface{}{
			"status": status,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := fazer(t, r, "GET", "/acompanhamentos?status=aprovado", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resposta map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
	assert.Equal(t, float64(1), resposta["total"])
}

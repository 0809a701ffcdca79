package seguranca

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
	require.NoError(t, db.AutoMigrate(&ObservacaoSeguranca{}, &auditoria.LogSistema{}))

	h := NewHandler(db)
	r := mux.NewRouter()
	r.HandleFunc("/observacoes", h.Criar).Methods("POST")
	r.HandleFunc("/observacoes", h.Listar).Methods("GET")
	r.HandleFunc("/observacoes/{id}", h.BuscarPorID).Methods("GET")
	r.HandleFunc("/observacoes/{id}", h.Atualizar).Methods("PUT")
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

func TestCriarObservacaoStatusPadrao(t *testing.T) {
	r := novoAmbiente(t)

	rec := fazer(t, r, "POST", "/observacoes", map[string]interface{}{
		"responsavel_observacao": "Carlos Lima",
		"data":                   "2025-03-10",
		"hora":                   "09:30:00",
		"turno":                  "M1",
		"equipe":                 "Equipe 18",
		"situacao":               "Colaborador sem capacete na subida da escada",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resposta map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
	dados := resposta["data"].(map[string]interface{})
	assert.Equal(t, StatusAberta, dados["status"])
}

func TestCriarObservacaoHoraInvalida(t *testing.T) {
	r := novoAmbiente(t)

	rec := fazer(t, r, "POST", "/observacoes", map[string]interface{}{
		"responsavel_observacao": "Carlos Lima",
		"data":                   "2025-03-10",
		"hora":                   "9h30",
		"turno":                  "M1",
		"equipe":                 "Equipe 18",
		"situacao":               "EPI incompleto",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAtualizarObservacaoTratamento(t *testing.T) {
	r := novoAmbiente(t)

	rec := fazer(t, r, "POST", "/observacoes", map[string]interface{}{
		"responsavel_observacao": "Carlos Lima",
		"data":                   "2025-03-10",
		"hora":                   "09:30:00",
		"turno":                  "M1",
		"equipe":                 "Equipe 18",
		"situacao":               "EPI incompleto",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resposta map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
	id := int(resposta["data"].(map[string]interface{})["id"].(float64))

	rec = fazer(t, r, "PUT", fmt.Sprintf("/observacoes/%d", id), map[string]interface{}{
		"status": "resolvida",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = fazer(t, r, "PUT", fmt.Sprintf("/observacoes/%d", id), map[string]interface{}{
		"acao_corretiva": "Reforço do DDS sobre uso de EPI",
		"status":         StatusConcluida,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resposta))
	dados := resposta["data"].(map[string]interface{})
	assert.Equal(t, StatusConcluida, dados["status"])
}

package auditoria

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

// Registrar grava uma entrada de auditoria. Deve ser chamado dentro da
// transação da mutação para que o log acompanhe o commit/rollback.
func Registrar(db *gorm.DB, r *http.Request, usuarioID uint, acao, tabela string, registroID uint, antes, depois interface{}) error {
	entrada := LogSistema{
		UsuarioID:       usuarioID,
		Acao:            acao,
		TabelaAfetada:   tabela,
		RegistroID:      registroID,
		DadosAnteriores: serializar(antes),
		DadosNovos:      serializar(depois),
	}
	if r != nil {
		entrada.IPAddress = r.RemoteAddr
		entrada.UserAgent = r.UserAgent()
	}
	return db.Create(&entrada).Error
}

func serializar(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

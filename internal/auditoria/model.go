package auditoria

import "time"

// LogSistema é uma entrada imutável de auditoria; somente inserções,
// nunca atualização ou remoção
type LogSistema struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UsuarioID       uint      `gorm:"index" json:"usuario_id"`
	Acao            string    `gorm:"size:100;not null" json:"acao"`
	TabelaAfetada   string    `gorm:"size:50" json:"tabela_afetada"`
	RegistroID      uint      `json:"registro_id"`
	DadosAnteriores string    `json:"dados_anteriores,omitempty"`
	DadosNovos      string    `json:"dados_novos,omitempty"`
	IPAddress       string    `gorm:"size:45" json:"ip_address"`
	UserAgent       string    `json:"user_agent"`
	CreatedAt       time.Time `json:"timestamp"`
}

func (LogSistema) TableName() string { return "log_sistema" }

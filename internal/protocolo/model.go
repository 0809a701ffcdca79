package protocolo

import "time"

// Status de execução de um protocolo
const (
	StatusPendente        = "pendente"
	StatusExecutado       = "executado"
	StatusImpossibilidade = "impossibilidade"
)

// Protocolo é um atendimento individual vinculado a um diário; é
// removido em cascata junto com ele
type Protocolo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NumeroProtocolo string `gorm:"size:50;not null" json:"numero_protocolo"`
	NumeroOS        string `gorm:"size:50" json:"numero_os"`
	TipoServico     string `gorm:"size:100" json:"tipo_servico"`
	Endereco        string `json:"endereco"`
	Cliente         string `gorm:"size:200" json:"cliente"`

	Status                string `gorm:"size:20;default:pendente" json:"status"`
	HorarioInicio         string `gorm:"size:8" json:"horario_inicio"`
	HorarioFim            string `gorm:"size:8" json:"horario_fim"`
	Observacoes           string `json:"observacoes"`
	MotivoImpossibilidade string `json:"motivo_impossibilidade"`

	// Prazos e envio
	PrazoVencimento time.Time  `gorm:"not null" json:"prazo_vencimento"`
	DataEnvio       *time.Time `json:"data_envio"`
	Enviado         bool       `gorm:"default:false" json:"enviado"`

	DiarioID uint `gorm:"not null;index" json:"diario_id"`
}

func (Protocolo) TableName() string { return "protocolo" }

// StatusValido informa se o status pertence ao enum fechado
func StatusValido(status string) bool {
	switch status {
	case StatusPendente, StatusExecutado, StatusImpossibilidade:
		return true
	}
	return false
}

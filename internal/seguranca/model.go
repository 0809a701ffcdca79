package seguranca

import "time"

// Status de tratamento de uma observação
const (
	StatusAberta      = "aberta"
	StatusEmAndamento = "em_andamento"
	StatusConcluida   = "concluida"
)

// ObservacaoSeguranca registra um desvio de segurança observado em
// campo e o tratamento da ação corretiva
type ObservacaoSeguranca struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ResponsavelObservacao string `gorm:"size:100;not null" json:"responsavel_observacao"`
	Data                  string `gorm:"size:10;not null" json:"data"`
	Hora                  string `gorm:"size:8;not null" json:"hora"`
	Turno                 string `gorm:"size:10;not null" json:"turno"`
	Equipe                string `gorm:"size:50;not null" json:"equipe"`

	Situacao     string `gorm:"not null" json:"situacao"`
	Causa        string `json:"causa"`
	AcaoImediata string `json:"acao_imediata"`

	AcaoCorretiva            string `json:"acao_corretiva"`
	ResponsavelAcaoCorretiva string `gorm:"size:100" json:"responsavel_acao_corretiva"`
	PrazoAcaoCorretiva       string `gorm:"size:10" json:"prazo_acao_corretiva"`

	Status    string `gorm:"size:20;default:aberta" json:"status"`
	CreatedBy uint   `json:"created_by"`
}

func (ObservacaoSeguranca) TableName() string { return "observacao_seguranca" }

func StatusValido(status string) bool {
	switch status {
	case StatusAberta, StatusEmAndamento, StatusConcluida:
		return true
	}
	return false
}

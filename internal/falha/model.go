package falha

import "time"

// Status de acompanhamento de um report
const (
	StatusAberto      = "aberto"
	StatusEmAndamento = "em_andamento"
	StatusConcluido   = "concluido"
	StatusCancelado   = "cancelado"
)

// Severidades aceitas para uma falha
const (
	SeveridadeBaixa   = "baixa"
	SeveridadeMedia   = "media"
	SeveridadeAlta    = "alta"
	SeveridadeCritica = "critica"
)

// ReportFalhaOperacional registra uma falha de campo com a análise de
// causa, as ações tomadas e o acompanhamento até a conclusão
type ReportFalhaOperacional struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DataOcorrencia    string `gorm:"size:10;not null" json:"data_ocorrencia"`
	Turno             string `gorm:"size:10;not null" json:"turno"`
	EquipeEnvolvida   string `gorm:"size:50" json:"equipe_envolvida"`
	ResponsavelReport string `gorm:"size:100;not null" json:"responsavel_report"`

	// Classificação
	TipoFalha  string `gorm:"size:50" json:"tipo_falha"`
	Severidade string `gorm:"size:20" json:"severidade"`
	Categoria  string `gorm:"size:50" json:"categoria"`

	// Descrição
	DescricaoFalha     string `gorm:"not null" json:"descricao_falha"`
	CausaRaiz          string `json:"causa_raiz"`
	ImpactoOperacional string `json:"impacto_operacional"`

	// Ações tomadas
	AcaoImediata   string `json:"acao_imediata"`
	AcaoCorretiva  string `json:"acao_corretiva"`
	AcaoPreventiva string `json:"acao_preventiva"`

	// Responsabilidades e prazos
	ResponsavelAcao string `gorm:"size:100" json:"responsavel_acao"`
	PrazoConclusao  string `gorm:"size:10" json:"prazo_conclusao"`
	DataConclusao   string `gorm:"size:10" json:"data_conclusao"`

	Status       string `gorm:"size:20;default:aberto" json:"status"`
	EficaciaAcao string `gorm:"size:20" json:"eficacia_acao"`

	CustoEstimado *float64 `json:"custo_estimado"`
	CustoReal     *float64 `json:"custo_real"`

	Evidencias    []string `gorm:"type:jsonb;serializer:json" json:"evidencias"`
	FotosAnexadas bool     `gorm:"default:false" json:"fotos_anexadas"`

	CreatedBy  uint  `json:"created_by"`
	ApprovedBy *uint `json:"approved_by"`
}

func (ReportFalhaOperacional) TableName() string { return "report_falhas_operacionais" }

func StatusValido(status string) bool {
	switch status {
	case StatusAberto, StatusEmAndamento, StatusConcluido, StatusCancelado:
		return true
	}
	return false
}

func SeveridadeValida(severidade string) bool {
	switch severidade {
	case SeveridadeBaixa, SeveridadeMedia, SeveridadeAlta, SeveridadeCritica:
		return true
	}
	return false
}

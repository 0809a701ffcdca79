package acompanhamento

import (
	"math"
	"time"
)

// Status possíveis de um acompanhamento
const (
	StatusEmAnalise = "em_analise"
	StatusAprovado  = "aprovado"
	StatusRejeitado = "rejeitado"
)

// DiarioAcompanhamento é o parecer consolidado do supervisor sobre um
// turno, com os contadores agregados do dia e a análise qualitativa
type DiarioAcompanhamento struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Data       string `gorm:"size:10;not null" json:"data"`
	Turno      string `gorm:"size:10;not null" json:"turno"`
	Supervisor string `gorm:"size:100;not null" json:"supervisor"`

	DiarioExecucaoID *uint `json:"diario_execucao_id"`

	// Análise do supervisor
	AnaliseGeral          string `gorm:"size:20" json:"analise_geral"`
	PontosAtencao         string `json:"pontos_atencao"`
	ObservacoesSupervisor string `json:"observacoes_supervisor"`

	// Contadores agregados do dia
	TotalEquipesAtivas    int `gorm:"default:0" json:"total_equipes_ativas"`
	TotalProtocolosDia    int `gorm:"default:0" json:"total_protocolos_dia"`
	TotalExecutados       int `gorm:"default:0" json:"total_executados"`
	TotalPendentes        int `gorm:"default:0" json:"total_pendentes"`
	TotalImpossibilidades int `gorm:"default:0" json:"total_impossibilidades"`

	PercentualEficiencia *float64 `json:"percentual_eficiencia"`
	QualidadeExecucao    string   `gorm:"size:20" json:"qualidade_execucao"`

	// Ações corretivas
	AcoesCorretivas  string `json:"acoes_corretivas"`
	PrazoAcoes       string `gorm:"size:10" json:"prazo_acoes"`
	ResponsavelAcoes string `gorm:"size:100" json:"responsavel_acoes"`

	Status    string `gorm:"size:20;default:em_analise" json:"status"`
	CreatedBy uint   `json:"created_by"`
}

func (DiarioAcompanhamento) TableName() string { return "diario_acompanhamento" }

func StatusValido(status string) bool {
	switch status {
	case StatusEmAnalise, StatusAprovado, StatusRejeitado:
		return true
	}
	return false
}

// CalcularPercentual devolve executados/total em percentual, com uma
// casa decimal
func CalcularPercentual(executados, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(executados)/float64(total)*1000) / 10
}

// ClassificarQualidade converte o percentual de eficiência na faixa
// qualitativa do acompanhamento
func ClassificarQualidade(percentual float64) string {
	switch {
	case percentual >= 95:
		return "Excelente"
	case percentual >= 80:
		return "Boa"
	case percentual >= 60:
		return "Regular"
	default:
		return "Ruim"
	}
}

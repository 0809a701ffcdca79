package diario

import (
	"time"

	"github.com/AmperaEnergia/api-diario/internal/protocolo"
)

// Status finais possíveis de um diário. A máquina de estados anda só
// para frente: "" -> supervisionado -> finalizado.
const (
	StatusSupervisionado = "supervisionado"
	StatusFinalizado     = "finalizado"
)

// Status de triagem calculados a partir do percentual de vencidos
const (
	TriagemNormal  = "normal"
	TriagemAtencao = "atencao"
	TriagemCritico = "critico"
)

// DiarioPlanejamento cobre o ciclo completo de um turno de uma equipe:
// planejamento, triagem, execução e supervisão. Único por
// (data, turno, equipe); o índice composto é o ponto real de garantia,
// a pré-checagem no handler só existe para devolver 409 amigável.
type DiarioPlanejamento struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Data   string `gorm:"size:10;not null;uniqueIndex:idx_diario_data_turno_equipe" json:"data"`
	Turno  string `gorm:"size:10;not null;uniqueIndex:idx_diario_data_turno_equipe" json:"turno"`
	Equipe string `gorm:"size:50;not null;uniqueIndex:idx_diario_data_turno_equipe" json:"equipe"`

	Colaborador1 string `gorm:"size:100;not null" json:"colaborador1"`
	Colaborador2 string `gorm:"size:100" json:"colaborador2"`
	Veiculo      string `gorm:"size:50" json:"veiculo"`
	Regiao       string `gorm:"size:100" json:"regiao"`
	CreatedBy    uint   `json:"created_by"`

	// Triagem
	ProtocolosPrazo            *int   `json:"protocolos_prazo"`
	ProtocolosVencidos         *int   `json:"protocolos_vencidos"`
	TotalProtocolos            *int   `json:"total_protocolos"`
	ProtocolosNaoEnviadosPrazo int    `gorm:"default:0" json:"protocolos_nao_enviados_prazo"`
	ProtocolosVencemNoTurno    int    `gorm:"default:0" json:"protocolos_vencem_no_turno"`
	ComentarioTriagem          string `json:"comentario_triagem"`
	StatusTriagem              string `gorm:"size:20" json:"status_triagem"`

	// Execução
	Atendido           *int   `json:"atendido"`
	Impossibilidade    *int   `json:"impossibilidade"`
	NaoExecutado       *int   `json:"nao_executado"`
	ComentarioExecucao string `json:"comentario_execucao"`
	Eficiencia         *int   `json:"eficiencia"`
	Classificacao      string `gorm:"size:20" json:"classificacao"`

	// Supervisão
	ComentarioSupervisor string `json:"comentario_supervisor"`
	SentimentoSupervisao string `gorm:"size:20" json:"sentimento_supervisao"`
	PontosAtencao        bool   `json:"pontos_atencao"`
	StatusFinal          string `gorm:"size:20" json:"status_final"`

	// Horários operacionais (HH:MM:SS)
	HorarioSaidaBase            string `gorm:"size:8" json:"horario_saida_base"`
	HorarioPrimeiroAtendimento  string `gorm:"size:8" json:"horario_primeiro_atendimento"`
	HorarioInicioIntervalo      string `gorm:"size:8" json:"horario_inicio_intervalo"`
	HorarioFimIntervalo         string `gorm:"size:8" json:"horario_fim_intervalo"`
	HorarioUltimoAtendimento    string `gorm:"size:8" json:"horario_ultimo_atendimento"`
	HorarioChegadaBase          string `gorm:"size:8" json:"horario_chegada_base"`

	Protocolos []protocolo.Protocolo `gorm:"foreignKey:DiarioID;constraint:OnDelete:CASCADE" json:"protocolos,omitempty"`
}

func (DiarioPlanejamento) TableName() string { return "diario_planejamento" }

// Finalizado indica o estado terminal do diário
func (d *DiarioPlanejamento) Finalizado() bool {
	return d.StatusFinal == StatusFinalizado
}

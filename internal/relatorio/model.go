package relatorio

import "time"

// Snapshot é o documento consolidado de um diário no momento da
// finalização; nunca é alterado depois de gravado
type Snapshot struct {
	Cabecalho   Cabecalho        `json:"cabecalho"`
	Protocolos  ResumoProtocolos `json:"protocolos"`
	Execucao    ResumoExecucao   `json:"execucao"`
	Comentarios Comentarios      `json:"comentarios"`
	Metricas    Metricas         `json:"metricas"`
	GeradoEm    string           `json:"timestamp"`
}

type Cabecalho struct {
	Data          string   `json:"data"`
	Turno         string   `json:"turno"`
	Equipe        string   `json:"equipe"`
	Colaboradores []string `json:"colaboradores"`
	Veiculo       string   `json:"veiculo"`
	Regiao        string   `json:"regiao"`
}

type ResumoProtocolos struct {
	NoPrazo  int `json:"no_prazo"`
	Vencidos int `json:"vencidos"`
	Total    int `json:"total"`
}

type ResumoExecucao struct {
	Atendido        int `json:"atendido"`
	Impossibilidade int `json:"impossibilidade"`
	NaoExecutado    int `json:"nao_executado"`
}

type Comentarios struct {
	Triagem    string `json:"triagem"`
	Execucao   string `json:"execucao"`
	Supervisor string `json:"supervisor"`
}

type Metricas struct {
	Eficiencia    int    `json:"eficiencia"`
	Classificacao string `json:"classificacao"`
	StatusTriagem string `json:"status_triagem"`
}

// RelatorioDiario é o registro persistido do snapshot, único por
// (data, turno, equipe)
type RelatorioDiario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Data      string   `gorm:"size:10;not null;uniqueIndex:idx_relatorio_data_turno_equipe" json:"data"`
	Turno     string   `gorm:"size:10;not null;uniqueIndex:idx_relatorio_data_turno_equipe" json:"turno"`
	Equipe    string   `gorm:"size:50;not null;uniqueIndex:idx_relatorio_data_turno_equipe" json:"equipe"`
	Relatorio Snapshot `gorm:"type:jsonb;serializer:json" json:"relatorio"`
}

func (RelatorioDiario) TableName() string { return "relatorios_diarios" }

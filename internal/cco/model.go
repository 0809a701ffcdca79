package cco

import "time"

// ControleCCO é o registro de monitoramento de uma equipe pelo centro
// de controle operacional durante um turno
type ControleCCO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CCOResponsavel string `gorm:"size:100;not null" json:"cco_responsavel"`
	Turno          string `gorm:"size:10;not null" json:"turno"`
	DataControle   string `gorm:"size:10;not null" json:"data_controle"`

	HorarioInicio string `gorm:"size:8" json:"horario_inicio"`
	HorarioFim    string `gorm:"size:8" json:"horario_fim"`

	Equipe string `gorm:"size:50;not null" json:"equipe"`

	Analise        string `gorm:"size:20" json:"analise"`
	Status         string `gorm:"size:20" json:"status"`
	ObservacoesCCO string `json:"observacoes_cco"`

	CreatedBy uint `json:"created_by"`
}

func (ControleCCO) TableName() string { return "controle_cco" }

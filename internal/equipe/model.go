package equipe

// Equipe operacional; o supervisor é uma referência fraca ao usuário
type Equipe struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Nome         string `gorm:"size:100;uniqueIndex;not null" json:"nome"`
	Descricao    string `json:"descricao"`
	SupervisorID *uint  `json:"supervisor_id"`
}

func (Equipe) TableName() string { return "team" }

package perfil

// Perfil define o papel de um usuário e suas permissões
type Perfil struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Nome       string   `gorm:"size:50;uniqueIndex;not null" json:"nome"`
	Descricao  string   `json:"descricao"`
	Permissoes []string `gorm:"type:jsonb;serializer:json" json:"permissoes"`
}

func (Perfil) TableName() string { return "perfil" }

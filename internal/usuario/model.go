package usuario

import (
	"time"

	"github.com/AmperaEnergia/api-diario/internal/equipe"
	"github.com/AmperaEnergia/api-diario/internal/perfil"
)

// Usuario do sistema. Contas nunca são removidas fisicamente; a
// desativação acontece via flag Ativo.
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username  string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	SenhaHash string `gorm:"size:255;not null" json:"-"`
	Ativo     bool   `gorm:"default:true" json:"ativo"`

	PerfilID *uint          `json:"perfil_id"`
	EquipeID *uint          `json:"equipe_id"`
	Perfil   *perfil.Perfil `gorm:"foreignKey:PerfilID" json:"-"`
	Equipe   *equipe.Equipe `gorm:"foreignKey:EquipeID" json:"-"`
}

func (Usuario) TableName() string { return "usuario" }

// NomePerfil retorna o nome do perfil carregado, ou vazio
func (u *Usuario) NomePerfil() string {
	if u.Perfil == nil {
		return ""
	}
	return u.Perfil.Nome
}

// NomeEquipe retorna o nome da equipe carregada, ou vazio
func (u *Usuario) NomeEquipe() string {
	if u.Equipe == nil {
		return ""
	}
	return u.Equipe.Nome
}

package usuario

import (
	"errors"

	"gorm.io/gorm"
)

var ErrUsuarioInativo = errors.New("usuário inativo")

type Repository interface {
	Salvar(db *gorm.DB, u *Usuario) error
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	BuscarPorUsername(db *gorm.DB, username string) (*Usuario, error)
	ExisteUsername(db *gorm.DB, username string) (bool, error)
	ExisteEmail(db *gorm.DB, email string) (bool, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	VerificarAtivo(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.Preload("Perfil").Preload("Equipe").First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) BuscarPorUsername(db *gorm.DB, username string) (*Usuario, error) {
	var u Usuario
	err := db.Preload("Perfil").Preload("Equipe").Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *repositoryImpl) ExisteUsername(db *gorm.DB, username string) (bool, error) {
	var total int64
	err := db.Model(&Usuario{}).Where("username = ?", username).Count(&total).Error
	return total > 0, err
}

func (r *repositoryImpl) ExisteEmail(db *gorm.DB, email string) (bool, error) {
	var total int64
	err := db.Model(&Usuario{}).Where("email = ?", email).Count(&total).Error
	return total > 0, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Preload("Perfil").Preload("Equipe").Order("id").Find(&usuarios).Error
	return usuarios, err
}

// VerificarAtivo confirma que o usuário existe e não foi desativado
func (r *repositoryImpl) VerificarAtivo(db *gorm.DB, id uint) error {
	var u Usuario
	if err := db.Select("id", "ativo").First(&u, id).Error; err != nil {
		return err
	}
	if !u.Ativo {
		return ErrUsuarioInativo
	}
	return nil
}

package equipe

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, e *Equipe) error
	BuscarPorID(db *gorm.DB, id uint) (*Equipe, error)
	ListarTodas(db *gorm.DB) ([]Equipe, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, e *Equipe) error {
	return db.Save(e).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Equipe, error) {
	var e Equipe
	err := db.First(&e, id).Error
	return &e, err
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Equipe, error) {
	var equipes []Equipe
	err := db.Order("nome").Find(&equipes).Error
	return equipes, err
}

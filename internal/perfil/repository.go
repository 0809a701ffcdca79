package perfil

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, p *Perfil) error
	BuscarPorID(db *gorm.DB, id uint) (*Perfil, error)
	BuscarPorNome(db *gorm.DB, nome string) (*Perfil, error)
	ListarTodos(db *gorm.DB) ([]Perfil, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Perfil) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Perfil, error) {
	var p Perfil
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) BuscarPorNome(db *gorm.DB, nome string) (*Perfil, error) {
	var p Perfil
	err := db.Where("nome = ?", nome).First(&p).Error
	return &p, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Perfil, error) {
	var perfis []Perfil
	err := db.Order("id").Find(&perfis).Error
	return perfis, err
}

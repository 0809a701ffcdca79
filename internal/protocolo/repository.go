package protocolo

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, p *Protocolo) error
	BuscarPorID(db *gorm.DB, id uint) (*Protocolo, error)
	ListarPorDiario(db *gorm.DB, diarioID uint) ([]Protocolo, error)
	Atualizar(db *gorm.DB, p *Protocolo) error
	Deletar(db *gorm.DB, id uint) error
	DiarioExiste(db *gorm.DB, diarioID uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Protocolo) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Protocolo, error) {
	var p Protocolo
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListarPorDiario(db *gorm.DB, diarioID uint) ([]Protocolo, error) {
	var lista []Protocolo
	err := db.Where("diario_id = ?", diarioID).Order("id").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, p *Protocolo) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Protocolo{}, id).Error
}

// DiarioExiste consulta a tabela do diário sem importar o pacote diario
// (o diário é o dono da relação)
func (r *repositoryImpl) DiarioExiste(db *gorm.DB, diarioID uint) (bool, error) {
	var total int64
	err := db.Table("diario_planejamento").Where("id = ?", diarioID).Count(&total).Error
	return total > 0, err
}

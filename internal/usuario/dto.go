package usuario

type UsuarioDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Ativo     bool   `json:"ativo"`
	Perfil    string `json:"perfil,omitempty"`
	Equipe    string `json:"equipe,omitempty"`
	CreatedAt string `json:"created_at"`
}

// MontarUsuarioDTO achata perfil e equipe para os nomes, como o
// restante da API expõe usuários
func MontarUsuarioDTO(u Usuario) UsuarioDTO {
	return UsuarioDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Ativo:     u.Ativo,
		Perfil:    u.NomePerfil(),
		Equipe:    u.NomeEquipe(),
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/AmperaEnergia/api-diario/internal/auditoria"
	"github.com/AmperaEnergia/api-diario/internal/auth"
	"github.com/AmperaEnergia/api-diario/internal/perfil"
	"github.com/AmperaEnergia/api-diario/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// request DTOs
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registrarRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PerfilID uint   `json:"perfil_id"`
	EquipeID *uint  `json:"equipe_id"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Perfis     perfil.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Perfis:     perfil.NewRepository(),
	}
}

// Login valida as credenciais e emite um JWT de 24h.
// Username inexistente e senha errada produzem a mesma resposta para não
// permitir enumeração de contas.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondErro(w, http.StatusBadRequest, "Username e password são obrigatórios")
		return
	}

	user, err := h.Repository.BuscarPorUsername(h.DB, req.Username)
	if err != nil || !utils.VerificarSenha(user.SenhaHash, req.Password) {
		utils.RespondErro(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}
	if !user.Ativo {
		utils.RespondErro(w, http.StatusUnauthorized, "Usuário inativo")
		return
	}

	token, err := auth.GerarToken(user.ID, user.Username, user.NomePerfil())
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao gerar token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"usuario": MontarUsuarioDTO(*user),
	})
}

// Registrar cadastra um novo usuário; rota restrita a administradores
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req registrarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	// Toda validação acontece antes de qualquer escrita
	campos := map[string]string{
		"username": req.Username,
		"email":    req.Email,
		"password": req.Password,
	}
	for _, nome := range []string{"username", "email", "password"} {
		if campos[nome] == "" {
			utils.RespondErro(w, http.StatusBadRequest, "Campo obrigatório: "+nome)
			return
		}
	}
	if req.PerfilID == 0 {
		utils.RespondErro(w, http.StatusBadRequest, "Campo obrigatório: perfil_id")
		return
	}

	if existe, err := h.Repository.ExisteUsername(h.DB, req.Username); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao consultar usuários")
		return
	} else if existe {
		utils.RespondErro(w, http.StatusConflict, "Username já existe")
		return
	}
	if existe, err := h.Repository.ExisteEmail(h.DB, req.Email); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao consultar usuários")
		return
	} else if existe {
		utils.RespondErro(w, http.StatusConflict, "Email já existe")
		return
	}

	if _, err := h.Perfis.BuscarPorID(h.DB, req.PerfilID); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "Perfil inválido")
		return
	}

	hash, err := utils.HashSenha(req.Password)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao processar senha")
		return
	}

	novo := Usuario{
		Username:  req.Username,
		Email:     req.Email,
		SenhaHash: hash,
		Ativo:     true,
		PerfilID:  &req.PerfilID,
		EquipeID:  req.EquipeID,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&novo).Error; err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"registrar_usuario", novo.TableName(), novo.ID, nil, MontarUsuarioDTO(novo))
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar usuário")
		return
	}

	criado, err := h.Repository.BuscarPorID(h.DB, novo.ID)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao carregar usuário")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"usuario": MontarUsuarioDTO(*criado)})
}

// Me retorna o usuário autenticado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UsuarioIDDoContexto(r.Context())
	user, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"usuario": MontarUsuarioDTO(*user)})
}

// Listar retorna todos os usuários cadastrados
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar usuários")
		return
	}
	dtos := make([]UsuarioDTO, 0, len(usuarios))
	for _, u := range usuarios {
		dtos = append(dtos, MontarUsuarioDTO(u))
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"usuarios": dtos, "total": len(dtos)})
}

// BuscarPorID retorna um usuário pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	user, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"usuario": MontarUsuarioDTO(*user)})
}

type atualizarRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	PerfilID *uint   `json:"perfil_id"`
	EquipeID *uint   `json:"equipe_id"`
}

// Atualizar altera email, senha, perfil ou equipe de um usuário
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	user, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}

	var req atualizarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	anterior := MontarUsuarioDTO(*user)
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := utils.HashSenha(*req.Password)
		if err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao processar senha")
			return
		}
		user.SenhaHash = hash
	}
	if req.PerfilID != nil {
		if _, err := h.Perfis.BuscarPorID(h.DB, *req.PerfilID); err != nil {
			utils.RespondErro(w, http.StatusBadRequest, "Perfil inválido")
			return
		}
		user.PerfilID = req.PerfilID
	}
	if req.EquipeID != nil {
		user.EquipeID = req.EquipeID
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Salvar(tx, user); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"atualizar_usuario", user.TableName(), user.ID, anterior, MontarUsuarioDTO(*user))
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar usuário")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"usuario": MontarUsuarioDTO(*user)})
}

// Desativar marca a conta como inativa; não há remoção física
func (h *Handler) Desativar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	user, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}

	anterior := MontarUsuarioDTO(*user)
	user.Ativo = false
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Salvar(tx, user); err != nil {
			return err
		}
		return auditoria.Registrar(tx, r, auth.UsuarioIDDoContexto(r.Context()),
			"desativar_usuario", user.TableName(), user.ID, anterior, MontarUsuarioDTO(*user))
	})
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao desativar usuário")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "usuário desativado com sucesso"})
}

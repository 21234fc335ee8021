package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求（管理员）
type CreateUserRequest struct {
	Name      string `json:"name"      binding:"required,min=2,max=100"`
	Email     string `json:"email"     binding:"required,email,max=150"`
	Matricula string `json:"matricula" binding:"required,min=3,max=30"`
	Password  string `json:"password"  binding:"required,min=6,max=72"`
	Role      string `json:"role"      binding:"omitempty,oneof=admin evaluator participant"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=150"`
	Role  *string `json:"role"  binding:"omitempty,oneof=admin evaluator participant"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Role string `form:"role" binding:"omitempty,oneof=admin evaluator participant"`
	PaginationRequest
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Matricula string `json:"matricula"`
	Role      string `json:"role"`
}

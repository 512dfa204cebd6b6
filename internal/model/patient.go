package model

// Patient is the registered patient record, stored under user_<username>.
type Patient struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Mobile   string `json:"mobile"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterPatientRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Age      int    `form:"age" json:"age" binding:"required"`
	Gender   string `form:"gender" json:"gender" binding:"required"`
	Mobile   string `form:"mobile" json:"mobile" binding:"required"`
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name   string `form:"name" json:"name" binding:"required"`
	Age    int    `form:"age" json:"age" binding:"required"`
	Gender string `form:"gender" json:"gender" binding:"required"`
	Mobile string `form:"mobile" json:"mobile" binding:"required"`
}

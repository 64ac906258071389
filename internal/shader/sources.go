package shader

// Uniform names shared by every program and the Go code that sets them.
const (
	UniformTime       = "time"
	UniformResolution = "resolution"
	UniformViewPos    = "viewPos"
	UniformFogColor   = "fogColor"
	UniformFogNear    = "fogNear"
	UniformFogFar     = "fogFar"
	UniformAmbient    = "ambient"
	UniformSkyColor   = "skyColor"
	UniformGround     = "groundColor"
	UniformLightDir   = "lightDir"
	UniformIntensity  = "lightIntensity"
	UniformLighting   = "lighting"
	UniformSkyTexture = "skybox"
	UniformCameraPos  = "cameraPosition"
)

// Program is one vertex/fragment pair.
type Program struct {
	Name     string
	Vertex   string
	Fragment string
}

// patternVS passes the mesh UVs through for the screen-independent pattern programs.
const patternVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  fragTexCoord = vertexTexCoord;
  fragNormal = vertexNormal;
  gl_Position = matProjection * matView * matModel * vec4(vertexPosition, 1.0);
}
`

// sparksFS draws drifting glowing points over the face UVs, re-seeded every whole second.
const sparksFS = `#version 330
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform float time;
uniform vec2 resolution;
out vec4 finalColor;

#define N(h) fract(sin(vec4(6, 9, 1, 0) * h) * 9e2)

void main() {
  vec4 o = vec4(0.0);
  vec2 u = fragTexCoord;
  float e, d;
  vec4 p;
  for (float i = 1.0; i < 12.0; i++) {
    e = i * 5.1 + time;
    d = floor(e);
    p = N(d) + 0.1;
    e -= d;
    for (float k = 0.0; k < 10.0; k++) {
      o += p * (2.0 - e) / 1e3 / length(u - (p - e * (N(k * i) - 0.5)).xy);
    }
  }
  finalColor = vec4(o.rgb, 1.0);
}
`

// voronoiFS shades each face with animated cells whose borders glow.
const voronoiFS = `#version 330
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform float time;
uniform vec2 resolution;
out vec4 finalColor;

vec2 hash2(vec2 p) {
  p = vec2(dot(p, vec2(127.1, 311.7)), dot(p, vec2(269.5, 183.3)));
  return fract(sin(p) * 43758.5453);
}

void main() {
  float aspect = resolution.y > 0.0 ? resolution.x / resolution.y : 1.0;
  vec2 uv = fragTexCoord * vec2(4.0 * aspect, 4.0);
  vec2 cell = floor(uv);
  vec2 f = fract(uv);
  float best = 8.0;
  float second = 8.0;
  vec2 id = vec2(0.0);
  for (int y = -1; y <= 1; y++) {
    for (int x = -1; x <= 1; x++) {
      vec2 n = vec2(float(x), float(y));
      vec2 o = hash2(cell + n);
      o = 0.5 + 0.5 * sin(time + 6.2831 * o);
      float dist = length(n + o - f);
      if (dist < best) {
        second = best;
        best = dist;
        id = cell + n;
      } else if (dist < second) {
        second = dist;
      }
    }
  }
  vec3 base = 0.5 + 0.5 * cos(6.2831 * (hash2(id).x + vec3(0.0, 0.33, 0.67)));
  float edge = smoothstep(0.0, 0.08, second - best);
  finalColor = vec4(mix(vec3(1.0), base * (0.6 + 0.4 * best), edge), 1.0);
}
`

// litVS feeds world position and normal to the lit and sky programs.
const litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`

// litFS is ambient plus a hemisphere light blended by the normal's angle to lightDir, then
// linear fog by eye distance. lighting = 0 skips the lights for flat materials like the floor.
const litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform sampler2D texture0;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform vec3 skyColor;
uniform vec3 groundColor;
uniform vec3 lightDir;
uniform float lightIntensity;
uniform float lighting;
uniform vec3 fogColor;
uniform float fogNear;
uniform float fogFar;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 color = tint.rgb;
  if (lighting > 0.5) {
    vec3 N = normalize(fragNormal);
    float w = 0.5 * dot(N, normalize(lightDir)) + 0.5;
    vec3 hemi = mix(groundColor, skyColor, w) * lightIntensity;
    color = tint.rgb * (ambient + hemi);
  }
  float dist = length(viewPos - fragPosition);
  float fog = clamp((dist - fogNear) / (fogFar - fogNear), 0.0, 1.0);
  finalColor = vec4(mix(color, fogColor, fog), tint.a);
}
`

// skyFS samples an equirectangular panorama by view direction.
const skyFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
out vec4 finalColor;
void main() {
  vec3 dir = normalize(fragPosition - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`

// Names of the built-in programs.
const (
	Sparks  = "sparks"
	Voronoi = "voronoi"
	Lit     = "lit"
	Sky     = "sky"
)

var builtin = map[string]Program{
	Sparks:  {Name: Sparks, Vertex: patternVS, Fragment: sparksFS},
	Voronoi: {Name: Voronoi, Vertex: patternVS, Fragment: voronoiFS},
	Lit:     {Name: Lit, Vertex: litVS, Fragment: litFS},
	Sky:     {Name: Sky, Vertex: litVS, Fragment: skyFS},
}
